package rates

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/mkglobal/bizportal/internal/config"
	"github.com/mkglobal/bizportal/internal/database"
	"github.com/mkglobal/bizportal/internal/models"
)

// Service fetches exchange rates in the background and appends them to
// the price history table. The commodity price viewer reads history
// from the DB only, so a fetch outage degrades to stale data, never to
// an empty page.
type Service struct {
	db   *database.DB
	cfg  config.RatesConfig
	http *http.Client
	stop chan struct{}
}

// NewService creates a rate fetcher service
func NewService(db *database.DB, cfg config.RatesConfig) *Service {
	return &Service{
		db:   db,
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
		stop: make(chan struct{}),
	}
}

// Start begins the background refresh loop
func (s *Service) Start() {
	go func() {
		log.Println("📡 Rate Service started")

		// Initial fetch shortly after boot
		time.Sleep(5 * time.Second)
		s.refresh()

		interval := time.Duration(s.cfg.RefreshInterval) * time.Minute
		if s.cfg.RefreshInterval <= 0 {
			interval = time.Hour
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.refresh()
			case <-s.stop:
				log.Println("🛑 Rate Service stopped")
				return
			}
		}
	}()
}

// Stop halts the service
func (s *Service) Stop() {
	close(s.stop)
}

// refresh fetches the current USD base rates and persists the pairs the
// business cares about.
func (s *Service) refresh() {
	rates, updatedAt, err := s.fetchUSDRates()
	if err != nil {
		log.Printf("❌ Rates: fetch failed: %v", err)
		return
	}

	krw := rates["KRW"]
	cny := rates["CNY"]

	quotes := map[string]float64{
		"USD_KRW": round2(krw),
	}
	if cny > 0 {
		quotes["CNY_KRW"] = round2(krw / cny)
		quotes["USD_CNY"] = math.Round(cny*10000) / 10000
	}

	day := updatedAt.Format("2006-01-02")
	for symbol, rate := range quotes {
		if rate <= 0 {
			continue
		}
		if err := s.Record(symbol, rate, day); err != nil {
			log.Printf("❌ Rates: failed to record %s: %v", symbol, err)
		}
	}
	log.Printf("✅ Rates: refreshed %d pairs for %s", len(quotes), day)
}

// Record appends one quote unless the same symbol/day pair exists
func (s *Service) Record(symbol string, rate float64, day string) error {
	var count int64
	if err := s.db.Model(&models.PriceQuote{}).
		Where("symbol = ? AND rate_date = ?", symbol, day).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.db.Create(&models.PriceQuote{
		Symbol:   symbol,
		Rate:     rate,
		RateDate: day,
	}).Error
}

// Current returns the latest quote per requested symbol
func (s *Service) Current(symbols []string) (map[string]models.PriceQuote, error) {
	result := make(map[string]models.PriceQuote, len(symbols))
	for _, symbol := range symbols {
		var q models.PriceQuote
		err := s.db.Where("symbol = ?", symbol).
			Order("rate_date DESC, created_at DESC").
			First(&q).Error
		if err != nil {
			continue // symbol never fetched yet
		}
		result[symbol] = q
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no rates recorded yet")
	}
	return result, nil
}

// History returns quotes for one symbol, newest first
func (s *Service) History(symbol string, limit int) ([]models.PriceQuote, error) {
	if limit <= 0 || limit > 365 {
		limit = 90
	}
	var quotes []models.PriceQuote
	err := s.db.Where("symbol = ?", symbol).
		Order("rate_date DESC").
		Limit(limit).
		Find(&quotes).Error
	return quotes, err
}

func (s *Service) fetchUSDRates() (map[string]float64, time.Time, error) {
	resp, err := s.http.Get(s.cfg.APIBaseURL + "/USD")
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("rate API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, time.Time{}, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rates          map[string]float64 `json:"rates"`
		TimeLastUpdate int64              `json:"time_last_update_unix"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse rate API response: %w", err)
	}

	updatedAt := time.Now()
	if payload.TimeLastUpdate > 0 {
		updatedAt = time.Unix(payload.TimeLastUpdate, 0).UTC()
	}
	return payload.Rates, updatedAt, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
