package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shgledger/internal/models"
	"shgledger/internal/money"

	"go.uber.org/zap"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

type LogStore interface {
	Log(ctx context.Context, groupID, memberID, mobile, message, status string) error
}

// Dispatcher sends SMS through a bulk gateway. Delivery is best effort:
// every real attempt is logged sent or failed, and nothing here ever
// reaches back into the ledger operation that triggered it.
type Dispatcher struct {
	client     *http.Client
	gatewayURL string
	apiKey     string
	enabled    bool
	logs       LogStore
	log        *zap.Logger
}

func NewDispatcher(gatewayURL, apiKey string, enabled bool, logs LogStore, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		client:     &http.Client{Timeout: 10 * time.Second},
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logs:       logs,
		log:        log,
	}
}

type gatewayPayload struct {
	Route   string `json:"route"`
	Message string `json:"message"`
	Numbers string `json:"numbers"`
}

// Send posts one message to the gateway and records the outcome. The
// returned status is informational; callers must not branch on it.
func (d *Dispatcher) Send(ctx context.Context, groupID, memberID, mobile, message string) string {
	if !d.enabled {
		d.log.Debug("sms disabled, skipping send", zap.String("member_id", memberID))
		return StatusFailed
	}
	status := StatusFailed
	if err := d.post(ctx, mobile, message); err != nil {
		d.log.Warn("sms delivery failed", zap.String("mobile", mobile), zap.Error(err))
	} else {
		status = StatusSent
	}
	if err := d.logs.Log(ctx, groupID, memberID, mobile, message, status); err != nil {
		d.log.Warn("sms log write failed", zap.Error(err))
	}
	return status
}

func (d *Dispatcher) post(ctx context.Context, mobile, message string) error {
	body, err := json.Marshal(gatewayPayload{Route: "q", Message: message, Numbers: mobile})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", d.apiKey)
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned %d", resp.StatusCode)
	}
	return nil
}

// Template notifications used by the ledger service.

func (d *Dispatcher) DepositRecorded(ctx context.Context, member models.Member, amount, walletBalance int64) {
	message := fmt.Sprintf(
		"%s %s: deposit of Rs %s recorded. Group balance: Rs %s.",
		member.FirstName, member.LastName, money.Format(amount), money.Format(walletBalance),
	)
	d.Send(ctx, member.GroupID, member.ID, member.Mobile, message)
}

func (d *Dispatcher) LoanIssued(ctx context.Context, member models.Member, principal int64, rate string, monthlyPayable int64) {
	message := fmt.Sprintf(
		"%s %s: loan of Rs %s issued at %s%% monthly. Payable each month: Rs %s.",
		member.FirstName, member.LastName, money.Format(principal), rate, money.Format(monthlyPayable),
	)
	d.Send(ctx, member.GroupID, member.ID, member.Mobile, message)
}

func (d *Dispatcher) LoanClosed(ctx context.Context, member models.Member, principal int64) {
	message := fmt.Sprintf(
		"%s %s: loan of Rs %s fully repaid. Loan status: closed.",
		member.FirstName, member.LastName, money.Format(principal),
	)
	d.Send(ctx, member.GroupID, member.ID, member.Mobile, message)
}
