package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/felix-harvey/microfinancial-sub002/internal/apperrors"
	portssvc "github.com/felix-harvey/microfinancial-sub002/internal/core/ports/services"
	"github.com/felix-harvey/microfinancial-sub002/internal/middleware"
	"github.com/felix-harvey/microfinancial-sub002/pkg/config"
)

// payrollResultPayload is the wire format of the batch result callback.
type payrollResultPayload struct {
	BatchReference string                `json:"batch_reference"`
	Results        []payrollResultRecord `json:"results"`
}

type payrollResultRecord struct {
	EmployeeID       string `json:"employee_id"`
	Status           string `json:"status"`
	PaymentReference string `json:"payment_reference"`
	PaymentDate      string `json:"payment_date"`
}

// PayrollDispatcher reports approved payroll disbursements back to the
// external payroll system over HTTP. Delivery happens on its own goroutine
// after the approval has committed; a failed callback is logged and never
// fails the approval.
type PayrollDispatcher struct {
	callbackURL   string
	signingSecret string
	client        *http.Client
}

// NewPayrollDispatcher creates a new PayrollDispatcher from config.
func NewPayrollDispatcher(cfg config.PayrollConfig) *PayrollDispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PayrollDispatcher{
		callbackURL:   cfg.CallbackURL,
		signingSecret: cfg.SigningSecret,
		client:        &http.Client{Timeout: timeout},
	}
}

var _ portssvc.PayrollDispatcherSvc = (*PayrollDispatcher)(nil)

// DispatchBatchResult submits the batch result callback asynchronously. An
// empty beneficiary list or missing callback URL is skipped with a log line.
func (d *PayrollDispatcher) DispatchBatchResult(ctx context.Context, input portssvc.PayrollDispatchInput) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(input.Beneficiaries) == 0 {
		logger.Info("Payroll callback skipped, no beneficiaries on batch", slog.String("batch_reference", input.BatchReference))
		return nil
	}
	if d.callbackURL == "" {
		logger.Warn("Payroll callback skipped, no callback URL configured", slog.String("batch_reference", input.BatchReference))
		return nil
	}

	// Detach from the request context so delivery survives the HTTP response;
	// the logger travels with it.
	go d.Deliver(context.WithoutCancel(ctx), input)
	return nil
}

// Deliver performs the synchronous callback delivery. Exposed so tests can
// exercise it without goroutine scheduling.
func (d *PayrollDispatcher) Deliver(ctx context.Context, input portssvc.PayrollDispatchInput) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := d.deliver(ctx, input); err != nil {
		logger.Error("Payroll callback delivery failed",
			slog.String("batch_reference", input.BatchReference),
			slog.String("error", err.Error()),
		)
		return
	}

	logger.Info("Payroll callback delivered", slog.String("batch_reference", input.BatchReference), slog.Int("beneficiaries", len(input.Beneficiaries)))
}

func (d *PayrollDispatcher) deliver(ctx context.Context, input portssvc.PayrollDispatchInput) error {
	results := make([]payrollResultRecord, len(input.Beneficiaries))
	for i, b := range input.Beneficiaries {
		results[i] = payrollResultRecord{
			EmployeeID:       b.EmployeeID,
			Status:           "Paid",
			PaymentReference: input.PaymentReference,
			PaymentDate:      input.PaymentDate.UTC().Format(time.RFC3339),
		}
	}

	body, err := json.Marshal(payrollResultPayload{
		BatchReference: input.BatchReference,
		Results:        results,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", apperrors.ErrCallbackDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.callbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to build request: %v", apperrors.ErrCallbackDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Payroll-Signature", d.sign(body))

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCallbackDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: callback returned status %d: %s", apperrors.ErrCallbackDelivery, resp.StatusCode, string(respBody))
	}

	return nil
}

// sign computes the hex-encoded HMAC-SHA256 signature for a payload.
func (d *PayrollDispatcher) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(d.signingSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
