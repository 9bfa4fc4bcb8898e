package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ymoney/networth-backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithName("Broker Account").
//	    WithCategory(model.CategoryStock).
//	    WithTicker("NVDA").
//	    Build(t, db)
type AssetBuilder struct {
	ID                string
	Name              string
	Ticker            string
	Category          string
	SubCategory       string
	Source            string
	CurrentPrice      float64
	IncludeInNetWorth bool
	IsFavorite        bool
	ManualAvgCost     *float64
	ExternalID        string
}

// NewAsset creates an AssetBuilder with sensible defaults: an included
// manual cash container priced at 1.0.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:                MakeID(),
		Name:              MakeName("Test Asset"),
		Category:          model.CategoryFluid,
		Source:            model.SourceManual,
		CurrentPrice:      1.0,
		IncludeInNetWorth: true,
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithTicker sets the market symbol.
func (b *AssetBuilder) WithTicker(ticker string) *AssetBuilder {
	b.Ticker = ticker
	return b
}

// WithCategory sets the category.
func (b *AssetBuilder) WithCategory(category string) *AssetBuilder {
	b.Category = category
	return b
}

// WithSubCategory sets the sub-category.
func (b *AssetBuilder) WithSubCategory(subCategory string) *AssetBuilder {
	b.SubCategory = subCategory
	return b
}

// WithSource sets the balance source.
func (b *AssetBuilder) WithSource(source string) *AssetBuilder {
	b.Source = source
	return b
}

// WithPrice sets the cached current price.
func (b *AssetBuilder) WithPrice(price float64) *AssetBuilder {
	b.CurrentPrice = price
	return b
}

// WithManualAvgCost sets the manual average cost override.
func (b *AssetBuilder) WithManualAvgCost(cost float64) *AssetBuilder {
	b.ManualAvgCost = &cost
	return b
}

// WithExternalID sets the provider-assigned external ID.
func (b *AssetBuilder) WithExternalID(externalID string) *AssetBuilder {
	b.ExternalID = externalID
	return b
}

// Excluded marks the asset as excluded from net worth.
func (b *AssetBuilder) Excluded() *AssetBuilder {
	b.IncludeInNetWorth = false
	return b
}

// Favorite marks the asset as a favorite.
func (b *AssetBuilder) Favorite() *AssetBuilder {
	b.IsFavorite = true
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, name, ticker, category, sub_category, source, current_price,
			include_in_net_worth, is_favorite, manual_avg_cost, external_id, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var ticker, subCategory, externalID interface{}
	if b.Ticker != "" {
		ticker = b.Ticker
	}
	if b.SubCategory != "" {
		subCategory = b.SubCategory
	}
	if b.ExternalID != "" {
		externalID = b.ExternalID
	}
	var manualAvgCost interface{}
	if b.ManualAvgCost != nil {
		manualAvgCost = *b.ManualAvgCost
	}

	now := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.Name, ticker, b.Category, subCategory, b.Source,
		b.CurrentPrice, b.IncludeInNetWorth, b.IsFavorite, manualAvgCost, externalID,
		now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:                b.ID,
		Name:              b.Name,
		Ticker:            b.Ticker,
		Category:          b.Category,
		SubCategory:       b.SubCategory,
		Source:            b.Source,
		CurrentPrice:      b.CurrentPrice,
		IncludeInNetWorth: b.IncludeInNetWorth,
		IsFavorite:        b.IsFavorite,
		ManualAvgCost:     b.ManualAvgCost,
		ExternalID:        b.ExternalID,
		LastUpdatedAt:     now,
	}
}

// TransactionBuilder provides a fluent interface for creating test ledger
// entries.
//
// Example usage:
//
//	testutil.NewTransaction(asset.ID).
//	    WithAmount(50000).
//	    OnDate("2025-03-01").
//	    Build(t, db)
type TransactionBuilder struct {
	ID         string
	AssetID    string
	Amount     float64
	UnitCost   float64
	Date       string
	IsTransfer bool
	Note       string
}

// NewTransaction creates a TransactionBuilder dated today with amount 1.
func NewTransaction(assetID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:      MakeID(),
		AssetID: assetID,
		Amount:  1,
		Date:    time.Now().UTC().Format("2006-01-02"),
	}
}

// WithAmount sets the signed quantity delta.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithUnitCost sets the per-unit cost.
func (b *TransactionBuilder) WithUnitCost(unitCost float64) *TransactionBuilder {
	b.UnitCost = unitCost
	return b
}

// OnDate sets the transaction date ("2006-01-02").
func (b *TransactionBuilder) OnDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// AsTransfer flags the entry as a transfer leg.
func (b *TransactionBuilder) AsTransfer() *TransactionBuilder {
	b.IsTransfer = true
	return b
}

// WithNote sets the note.
func (b *TransactionBuilder) WithNote(note string) *TransactionBuilder {
	b.Note = note
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO asset_transaction (id, asset_id, amount, unit_cost, date, is_transfer, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var note interface{}
	if b.Note != "" {
		note = b.Note
	}

	now := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.AssetID, b.Amount, b.UnitCost, b.Date, b.IsTransfer, note, now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date %q: %v", b.Date, err)
	}

	return model.Transaction{
		ID:         b.ID,
		AssetID:    b.AssetID,
		Amount:     b.Amount,
		UnitCost:   b.UnitCost,
		Date:       date,
		IsTransfer: b.IsTransfer,
		Note:       b.Note,
		CreatedAt:  now,
	}
}

// GoalBuilder provides a fluent interface for creating test goals.
type GoalBuilder struct {
	ID           string
	Name         string
	TargetAmount float64
	GoalType     string
	Currency     string
}

// NewGoal creates a GoalBuilder for a net-worth goal of 1,000,000.
func NewGoal() *GoalBuilder {
	return &GoalBuilder{
		ID:           MakeID(),
		Name:         MakeName("Test Goal"),
		TargetAmount: 1_000_000,
		GoalType:     model.GoalNetWorth,
		Currency:     "TWD",
	}
}

// WithName sets a custom name.
func (b *GoalBuilder) WithName(name string) *GoalBuilder {
	b.Name = name
	return b
}

// WithTarget sets the target amount.
func (b *GoalBuilder) WithTarget(amount float64) *GoalBuilder {
	b.TargetAmount = amount
	return b
}

// WithType sets the goal type.
func (b *GoalBuilder) WithType(goalType string) *GoalBuilder {
	b.GoalType = goalType
	return b
}

// Build creates the goal in the database and returns it.
func (b *GoalBuilder) Build(t *testing.T, db *sql.DB) model.Goal {
	t.Helper()

	query := `
		INSERT INTO goal (id, name, target_amount, goal_type, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.Name, b.TargetAmount, b.GoalType, b.Currency, now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test goal: %v", err)
	}

	return model.Goal{
		ID:           b.ID,
		Name:         b.Name,
		TargetAmount: b.TargetAmount,
		GoalType:     b.GoalType,
		Currency:     b.Currency,
		CreatedAt:    now,
	}
}
