package access

// Tier of service the client should render: free|premium
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)
