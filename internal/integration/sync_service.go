package integration

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ymoney/networth-backend/internal/apperrors"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/repository"
)

// SyncService reconciles externally reported balances into the ledger.
//
// Sync never overwrites quantities directly: for each reported holding it
// computes the delta against the ledger-derived quantity and, when non-zero,
// writes a balance-adjustment transaction with unit cost 0. The ledger stays
// the single source of truth and history reconstruction sees the change on
// the day it happened.
type SyncService struct {
	integrationRepo *repository.IntegrationRepository
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	registry        *Registry
	crypter         *Crypter
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	integrationRepo *repository.IntegrationRepository,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	registry *Registry,
	crypter *Crypter,
) *SyncService {
	return &SyncService{
		integrationRepo: integrationRepo,
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		registry:        registry,
		crypter:         crypter,
	}
}

// CreateIntegration encrypts the supplied credentials and persists the
// integration.
func (s *SyncService) CreateIntegration(i model.Integration, apiKey, apiSecret string) (model.Integration, error) {
	if i.Provider == "" {
		return model.Integration{}, apperrors.ErrInvalidProvider
	}
	if _, ok := s.registry.Lookup(i.Provider); !ok {
		return model.Integration{}, apperrors.ErrInvalidProvider
	}
	if i.Name == "" {
		return model.Integration{}, apperrors.ErrInvalidName
	}

	var err error
	if i.APIKey, err = s.crypter.Encrypt(apiKey); err != nil {
		return model.Integration{}, err
	}
	if i.APISecret, err = s.crypter.Encrypt(apiSecret); err != nil {
		return model.Integration{}, err
	}

	return s.integrationRepo.CreateIntegration(i)
}

// GetIntegrations lists configured integrations. Credential tokens are
// never serialized; the model hides them from JSON.
func (s *SyncService) GetIntegrations(onlyActive bool) ([]model.Integration, error) {
	return s.integrationRepo.GetIntegrations(onlyActive)
}

// DeleteIntegration removes an integration. Assets it created stay; they
// simply stop receiving adjustments.
func (s *SyncService) DeleteIntegration(integrationID string) error {
	if integrationID == "" {
		return apperrors.ErrEmptyID
	}
	return s.integrationRepo.DeleteIntegration(integrationID)
}

// Sync runs one reconciliation for an integration.
//
// For each balance the provider reports: find the matching asset by external
// ID (creating it on first sight), compare the reported quantity against the
// ledger and write an adjustment transaction for the difference. Reported
// holdings the ledger already matches produce no writes.
func (s *SyncService) Sync(ctx context.Context, integrationID string) (model.IntegrationSyncResult, error) {
	integration, err := s.integrationRepo.GetIntegration(integrationID)
	if err != nil {
		return model.IntegrationSyncResult{}, err
	}

	provider, ok := s.registry.Lookup(integration.Provider)
	if !ok {
		return model.IntegrationSyncResult{}, apperrors.ErrInvalidProvider
	}

	creds, err := s.decryptCredentials(integration)
	if err != nil {
		return model.IntegrationSyncResult{}, err
	}

	balances, err := provider.FetchBalances(ctx, creds)
	if err != nil {
		return model.IntegrationSyncResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToSyncIntegration, err)
	}

	now := time.Now().UTC()
	result := model.IntegrationSyncResult{
		IntegrationID: integration.ID,
		Provider:      integration.Provider,
		SyncedAt:      now,
	}

	for _, balance := range balances {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		asset, err := s.findOrCreateAsset(integration, balance)
		if err != nil {
			log.Printf("sync: skipping %s balance %s: %v", integration.Provider, balance.Ticker, err)
			continue
		}
		result.AssetsSynced++

		transactions, err := s.transactionRepo.GetTransactionsByAsset(asset.ID)
		if err != nil {
			return result, err
		}

		held := 0.0
		for _, t := range transactions {
			held += t.Amount
		}

		delta := balance.Quantity - held
		if delta == 0 {
			continue
		}

		_, err = s.transactionRepo.CreateTransaction(model.Transaction{
			AssetID:  asset.ID,
			Amount:   delta,
			UnitCost: 0,
			Date:     now,
			Note:     fmt.Sprintf("Balance sync from %s", integration.Provider),
		})
		if err != nil {
			return result, err
		}
		result.Adjustments++
	}

	if err := s.integrationRepo.MarkSynced(integration.ID, now); err != nil {
		return result, err
	}

	return result, nil
}

// SyncAll runs Sync for every active integration, logging and continuing
// past per-integration failures. Used by the scheduled sync cycle.
func (s *SyncService) SyncAll(ctx context.Context) []model.IntegrationSyncResult {
	integrations, err := s.integrationRepo.GetIntegrations(true)
	if err != nil {
		log.Printf("sync: failed to list integrations: %v", err)
		return nil
	}

	results := make([]model.IntegrationSyncResult, 0, len(integrations))
	for _, integration := range integrations {
		result, err := s.Sync(ctx, integration.ID)
		if err != nil {
			log.Printf("sync: %s (%s) failed: %v", integration.Name, integration.Provider, err)
			continue
		}
		results = append(results, result)
	}
	return results
}

func (s *SyncService) decryptCredentials(integration model.Integration) (Credentials, error) {
	apiKey, err := s.crypter.Decrypt(integration.APIKey)
	if err != nil {
		return Credentials{}, err
	}
	apiSecret, err := s.crypter.Decrypt(integration.APISecret)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{APIKey: apiKey, APISecret: apiSecret}, nil
}

// findOrCreateAsset resolves the asset a reported balance belongs to,
// creating an exchange-sourced asset on first sight of a ticker.
func (s *SyncService) findOrCreateAsset(integration model.Integration, balance model.ProviderBalance) (model.Asset, error) {
	externalID := fmt.Sprintf("%s:%s", integration.ID, balance.Ticker)

	asset, err := s.assetRepo.GetAssetByExternalID(model.SourceExchange, externalID)
	if err == nil {
		return asset, nil
	}
	if err != apperrors.ErrAssetNotFound {
		return model.Asset{}, err
	}

	name := balance.Name
	if name == "" {
		name = balance.Ticker
	}

	return s.assetRepo.CreateAsset(model.Asset{
		Name:              name,
		Ticker:            balance.Ticker,
		Category:          model.CategoryCrypto,
		Source:            model.SourceExchange,
		IncludeInNetWorth: true,
		ExternalID:        externalID,
	})
}
