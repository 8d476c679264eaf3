// internal/services/promotion_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/adsworks/ads-backend/internal/config"
	"github.com/adsworks/ads-backend/internal/models"
)

// PromotionService sells featured placement for listings. Promote creates a
// Stripe PaymentIntent; Confirm checks it succeeded and marks the listing
// featured until the configured expiry.
type PromotionService struct {
	db  *gorm.DB
	cfg *config.Config
}

type PromotionIntentResponse struct {
	ClientSecret string  `json:"client_secret"`
	PaymentID    string  `json:"payment_id"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}

type ConfirmPromotionRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

func NewPromotionService(db *gorm.DB, cfg *config.Config) *PromotionService {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PromotionService{db: db, cfg: cfg}
}

func (s *PromotionService) Promote(listingID, userID uint) (*PromotionIntentResponse, error) {
	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	amountInCents := int64(s.cfg.Payment.PromotionPrice * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String("usd"),
	}
	params.AddMetadata("listing_id", strconv.FormatUint(uint64(listingID), 10))
	params.AddMetadata("user_id", strconv.FormatUint(uint64(userID), 10))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PromotionIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Amount:       s.cfg.Payment.PromotionPrice,
		Status:       string(pi.Status),
	}, nil
}

func (s *PromotionService) Confirm(listingID uint, req *ConfirmPromotionRequest) (*models.Listing, error) {
	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: payment intent status %s", ErrPromotionUnpaid, pi.Status)
	}

	if got := pi.Metadata["listing_id"]; got != strconv.FormatUint(uint64(listingID), 10) {
		return nil, fmt.Errorf("%w: payment intent belongs to another listing", ErrPromotionUnpaid)
	}

	var listing models.Listing
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		now := time.Now().UTC()
		until := now.AddDate(0, 0, s.cfg.Payment.PromotionDays)
		listing.Featured = true
		listing.FeaturedUntil = &until
		listing.UpdatedAt = now

		if err := tx.Model(&listing).Updates(map[string]interface{}{
			"featured":       true,
			"featured_until": until,
			"updated_at":     now,
		}).Error; err != nil {
			return fmt.Errorf("failed to mark listing featured: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &listing, nil
}
