package digitalocean

import (
	"context"
	"fmt"

	"github.com/digitalocean/godo"
)

type client struct {
	api *godo.Client
}

func NewClient(token string) *client {
	return &client{
		api: godo.NewFromToken(token),
	}
}

// GetBalanceMessage reports the hosting account balance for the deployment
// the assistant backend runs on.
func (c *client) GetBalanceMessage(ctx context.Context) (string, error) {
	b, _, err := c.api.Balance.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching balance: %w", err)
	}

	return fmt.Sprintf("Hosting Balance Info:\n\nMonth-To-Date Balance: $%v\nAccount Balance: $%v",
		b.MonthToDateBalance, b.AccountBalance), nil
}
