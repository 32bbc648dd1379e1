package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"spinrewards/internal/models"
	"spinrewards/internal/withdraw"
)

func TestRequestWithdrawalSuccess(t *testing.T) {
	handler := newTestHandler(stubDirectory{
		byIDFn: func(_ context.Context, userID string) (models.Account, error) {
			return models.Account{ID: userID, Name: "Alice"}, nil
		},
	}, stubLedger{}, stubWithdrawals{
		requestFn: func(_ context.Context, userID, userName, method string, amount int64, accountDetails string) (models.WithdrawRequest, error) {
			if userName != "Alice" || method != models.MethodEasypaisa || amount != 6000 {
				t.Fatalf("unexpected request args: %s %s %d", userName, method, amount)
			}
			return models.WithdrawRequest{ID: "w-1", UserID: userID, Status: models.WithdrawPending, Amount: amount}, nil
		},
	}, stubRewards{}, stubSettingsRegistry{}, stubStats{}, stubAuditStore{})

	body := []byte(`{"method":"Easypaisa","amount":6000,"account_details":"0300-1234567"}`)
	rr := serveAuthed(handler.RequestWithdrawal, authedRequest(t, http.MethodPost, "/withdrawals", body))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var request models.WithdrawRequest
	if err := json.NewDecoder(rr.Body).Decode(&request); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if request.Status != models.WithdrawPending {
		t.Fatalf("unexpected request: %#v", request)
	}
}

func TestRequestWithdrawalBadMethod(t *testing.T) {
	handler := newTestHandler(stubDirectory{}, stubLedger{}, stubWithdrawals{}, stubRewards{}, stubSettingsRegistry{}, stubStats{}, stubAuditStore{})
	body := []byte(`{"method":"PAYPAL","amount":6000,"account_details":"x"}`)
	rr := serveAuthed(handler.RequestWithdrawal, authedRequest(t, http.MethodPost, "/withdrawals", body))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRequestWithdrawalMissingDetails(t *testing.T) {
	handler := newTestHandler(stubDirectory{}, stubLedger{}, stubWithdrawals{}, stubRewards{}, stubSettingsRegistry{}, stubStats{}, stubAuditStore{})
	body := []byte(`{"method":"JazzCash","amount":6000}`)
	rr := serveAuthed(handler.RequestWithdrawal, authedRequest(t, http.MethodPost, "/withdrawals", body))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRequestWithdrawalDisabled(t *testing.T) {
	handler := newTestHandler(stubDirectory{}, stubLedger{}, stubWithdrawals{
		requestFn: func(context.Context, string, string, string, int64, string) (models.WithdrawRequest, error) {
			return models.WithdrawRequest{}, withdraw.ErrWithdrawalsDisabled
		},
	}, stubRewards{}, stubSettingsRegistry{}, stubStats{}, stubAuditStore{})

	body := []byte(`{"method":"GiftCard","amount":6000,"account_details":"alice@example.com"}`)
	rr := serveAuthed(handler.RequestWithdrawal, authedRequest(t, http.MethodPost, "/withdrawals", body))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestRequestWithdrawalBelowMinimum(t *testing.T) {
	handler := newTestHandler(stubDirectory{}, stubLedger{}, stubWithdrawals{
		requestFn: func(context.Context, string, string, string, int64, string) (models.WithdrawRequest, error) {
			return models.WithdrawRequest{}, withdraw.ErrBelowMinimum
		},
	}, stubRewards{}, stubSettingsRegistry{}, stubStats{}, stubAuditStore{})

	body := []byte(`{"method":"Easypaisa","amount":100,"account_details":"x"}`)
	rr := serveAuthed(handler.RequestWithdrawal, authedRequest(t, http.MethodPost, "/withdrawals", body))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRequestWithdrawalInsufficient(t *testing.T) {
	handler := newTestHandler(stubDirectory{}, stubLedger{}, stubWithdrawals{
		requestFn: func(context.Context, string, string, string, int64, string) (models.WithdrawRequest, error) {
			return models.WithdrawRequest{}, withdraw.ErrInsufficientBalance
		},
	}, stubRewards{}, stubSettingsRegistry{}, stubStats{}, stubAuditStore{})

	body := []byte(`{"method":"Easypaisa","amount":6000,"account_details":"x"}`)
	rr := serveAuthed(handler.RequestWithdrawal, authedRequest(t, http.MethodPost, "/withdrawals", body))
	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", rr.Code)
	}
}

func TestListWithdrawalsOwnOnly(t *testing.T) {
	handler := newTestHandler(stubDirectory{}, stubLedger{}, stubWithdrawals{
		listFn: func(_ context.Context, userID string) ([]models.WithdrawRequest, error) {
			if userID != "user-1" {
				t.Fatalf("expected own list, got %s", userID)
			}
			return []models.WithdrawRequest{{ID: "w-1", UserID: userID}}, nil
		},
	}, stubRewards{}, stubSettingsRegistry{}, stubStats{}, stubAuditStore{})

	rr := serveAuthed(handler.ListWithdrawals, authedRequest(t, http.MethodGet, "/withdrawals", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var requests []models.WithdrawRequest
	if err := json.NewDecoder(rr.Body).Decode(&requests); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(requests) != 1 || requests[0].ID != "w-1" {
		t.Fatalf("unexpected requests: %#v", requests)
	}
}
