package ledger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/classify"
	"github.com/oyaguma3/wallet-session-poc/apps/session-server/internal/network"
	"github.com/oyaguma3/wallet-session-poc/pkg/apperr"
)

const testAddress = "GAAZI4TCR3TY5OJHCTJC2A4QSY6CJWJH5IAJTGKIN2ER7LBNVKOCCWN7"

func testConfig(query, funding string) network.Config {
	return network.Config{
		Name:            network.Testnet,
		SigningDomain:   network.TestnetPassphrase,
		QueryEndpoint:   query,
		FundingEndpoint: funding,
	}
}

func TestClient_Balance(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "ネイティブ資産あり",
			body: `{"account_id":"` + testAddress + `","balances":[{"asset_type":"credit_alphanum4","balance":"5.0"},{"asset_type":"native","balance":"9999.9999900"}]}`,
			want: "9999.9999900",
		},
		{
			name: "ネイティブ資産なし",
			body: `{"account_id":"` + testAddress + `","balances":[]}`,
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/accounts/"+testAddress {
					t.Errorf("path = %q", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewClient().Balance(context.Background(), testConfig(srv.URL+"/", ""), testAddress)
			if err != nil {
				t.Fatalf("Balance() error = %v", err)
			}
			if got.Native != tt.want {
				t.Errorf("Native = %q, want %q", got.Native, tt.want)
			}
			if got.Network != network.Testnet || got.Address != testAddress {
				t.Errorf("Balance = %+v", got)
			}
		})
	}
}

func TestClient_BalanceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "アカウントなし",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, apperr.ErrAccountNotFound) {
					t.Errorf("error = %v, want ErrAccountNotFound", err)
				}
			},
		},
		{
			name:   "サーバーエラー",
			status: http.StatusServiceUnavailable,
			check: func(t *testing.T, err error) {
				var be *apperr.BackendError
				if !errors.As(err, &be) {
					t.Fatalf("error = %v, want *BackendError", err)
				}
				if be.StatusCode != http.StatusServiceUnavailable {
					t.Errorf("StatusCode = %d", be.StatusCode)
				}
				if !errors.Is(err, apperr.ErrLedgerAPI) {
					t.Errorf("error = %v, want ErrLedgerAPI", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"detail":"resource missing"}`))
			}))
			defer srv.Close()

			_, err := NewClient().Balance(context.Background(), testConfig(srv.URL, ""), testAddress)
			tt.check(t, err)
		})
	}
}

func TestClient_BalanceConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient().Balance(context.Background(), testConfig(url, ""), testAddress)
	if !errors.Is(err, classify.ErrNetworkFailure) {
		t.Errorf("error = %v, want NetworkFailure", err)
	}
}

func TestClient_BalanceEmptyAddress(t *testing.T) {
	_, err := NewClient().Balance(context.Background(), testConfig("http://127.0.0.1:1", ""), "")
	if !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestClient_Fund(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("addr"); got != testAddress {
			t.Errorf("addr = %q, want %q", got, testAddress)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hash":"abc123","successful":true}`))
	}))
	defer srv.Close()

	got, err := NewClient().Fund(context.Background(), testConfig("", srv.URL), testAddress)
	if err != nil {
		t.Fatalf("Fund() error = %v", err)
	}
	if got.TxHash != "abc123" {
		t.Errorf("TxHash = %q, want abc123", got.TxHash)
	}
}

func TestClient_FundAlreadyFunded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"account already funded to starting balance"}`))
	}))
	defer srv.Close()

	_, err := NewClient().Fund(context.Background(), testConfig("", srv.URL), testAddress)
	var be *apperr.BackendError
	if !errors.As(err, &be) || be.StatusCode != http.StatusBadRequest {
		t.Errorf("error = %v, want BackendError(400)", err)
	}
}

// TestClient_FundWithoutEndpoint は資金供給エンドポイントのないネットワークで要求を送らないことを検証する
func TestClient_FundWithoutEndpoint(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	cfg := network.Config{
		Name:          network.Mainnet,
		SigningDomain: network.MainnetPassphrase,
		QueryEndpoint: srv.URL,
	}
	_, err := NewClient().Fund(context.Background(), cfg, testAddress)

	var cfgErr *classify.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigurationError", err)
	}
	if !errors.Is(err, apperr.ErrFundingUnsupported) {
		t.Errorf("error = %v, want ErrFundingUnsupported", err)
	}
	if calls.Load() != 0 {
		t.Errorf("リクエスト数 = %d, want 0", calls.Load())
	}
}
