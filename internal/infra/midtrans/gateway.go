package midtrans

import (
	"fmt"

	"streaming-app/internal/domain/billing"
	"streaming-app/internal/domain/plans"
	"streaming-app/internal/domain/users"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"
)

// SnapClient wraps the Midtrans Snap API behind billing.Gateway. It issues
// the payable token and redirect URL the client needs to complete payment;
// everything after that arrives asynchronously on the notification webhook.
type SnapClient struct {
	client    snap.Client
	finishURL string
}

func NewSnapClient(serverKey string, production bool, appURL string) *SnapClient {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	c := snap.Client{}
	c.New(serverKey, env)

	return &SnapClient{
		client:    c,
		finishURL: appURL + "/payment-success",
	}
}

func (s *SnapClient) CreateTransaction(orderID string, amount int64, plan plans.Plan, customer *users.User) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		Items: &[]midtrans.ItemDetails{
			{ID: plan.ID, Price: plan.Price, Qty: 1, Name: plan.Name},
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customer.Username,
			Email: customer.Email,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s?order_id=%s", s.finishURL, orderID),
		},
	}

	resp, err := s.client.CreateTransaction(req)
	if err != nil {
		zap.L().Error("snap transaction creation failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return "", "", fmt.Errorf("%w: %v", billing.ErrGatewayUnavailable, err)
	}

	return resp.Token, resp.RedirectURL, nil
}
