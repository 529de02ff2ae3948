package access

import (
	"time"

	"streaming-app/internal/domain/users"
)

// Policy is the effective access for UI/product decisions. Computed from the
// user's entitlement at request time, never stored.
type Policy struct {
	Tier         Tier     `json:"tier"`
	Capabilities []string `json:"capabilities"`
}

func ComputePolicy(now time.Time, u *users.User) Policy {
	tier := TierFree
	if u != nil && u.HasActiveEntitlement(now) {
		tier = TierPremium
	}

	return Policy{
		Tier:         tier,
		Capabilities: CapabilitiesFor(tier),
	}
}

func CapabilitiesFor(tier Tier) []string {
	base := []string{"stream_standard", "create_playlists", "like_songs"}

	if tier == TierPremium {
		return append(base, "stream_premium", "high_quality_audio", "ad_free")
	}
	return base
}
