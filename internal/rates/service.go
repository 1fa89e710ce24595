package rates

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"blocktix/internal/models"
)

// Fallback conversion pair used whenever the rate endpoint is unreachable or
// returns garbage. 1 KES = 0.0000075 ETH; the ETH→KES direction is the exact
// inverse (≈133,333) so that converting back and forth on the fallback path
// is lossless.
const FallbackKesToEth = 0.0000075

// Service converts between the display currency (KES) and the chain's native
// unit. Every conversion fetches the rate independently: there is no cache
// and no retry, and two calls inside the same flow may see different
// snapshots. Display conversions only — the purchase flow never pays an
// amount derived from this service.
type Service struct {
	EndpointURL string
	Client      *http.Client
}

func NewService(endpointURL string, client *http.Client) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{EndpointURL: endpointURL, Client: client}
}

// fetchRate returns the live snapshot, or the fallback pair and false when
// the endpoint cannot be used.
func (s *Service) fetchRate() (models.ExchangeRate, bool) {
	fallback := models.ExchangeRate{
		EthToKes: 1 / FallbackKesToEth,
		KesToEth: FallbackKesToEth,
	}
	if s.EndpointURL == "" {
		return fallback, false
	}

	resp, err := s.Client.Get(s.EndpointURL)
	if err != nil {
		return fallback, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback, false
	}

	var rate models.ExchangeRate
	if err := json.NewDecoder(resp.Body).Decode(&rate); err != nil {
		return fallback, false
	}
	if rate.KesToEth <= 0 || rate.EthToKes <= 0 {
		return fallback, false
	}
	return rate, true
}

// KesToNative converts a KES amount into a native-unit decimal string.
// Never fails: the fallback pair covers endpoint outages.
func (s *Service) KesToNative(kesAmount float64) string {
	rate, _ := s.fetchRate()
	return strconv.FormatFloat(kesAmount*rate.KesToEth, 'f', -1, 64)
}

// NativeToKes converts a native-unit decimal string into KES. A malformed
// amount converts as zero rather than failing.
func (s *Service) NativeToKes(nativeAmount string) float64 {
	eth, err := strconv.ParseFloat(nativeAmount, 64)
	if err != nil {
		return 0
	}
	rate, live := s.fetchRate()
	if live {
		return eth * rate.EthToKes
	}
	// Dividing by the constant keeps the fallback pair exactly inverse.
	return eth / rate.KesToEth
}

// Handler serves the fixed-rate endpoint consumed by storefront clients.
// The values are static; a production deployment would proxy a real feed.
type Handler struct {
	EthToKes float64
	KesToEth float64
}

func (h *Handler) ExchangeRate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ExchangeRate{
		EthToKes: h.EthToKes,
		KesToEth: h.KesToEth,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","message":"Blockchain ticketing API is running"}`)
}
