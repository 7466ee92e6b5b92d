// Package models holds the closed set of data-model types shared across the
// ESG pipeline's components, per the identities and invariants in the
// specification's data model section.
package models

import "time"

// Company is the authoritative record for one tracked, publicly listed
// entity. Identity is (Symbol, ISIN). Owned exclusively by the catalog
// synchronizer.
type Company struct {
	ID        int64     `json:"id" db:"id"`
	Symbol    string    `json:"symbol" db:"symbol"`
	ISIN      string    `json:"isin" db:"isin"`
	Name      string    `json:"name" db:"name"`
	Industry  string    `json:"industry" db:"industry"`
	Series    string    `json:"series" db:"series"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IngestionStatus is the closed set of states an IngestionMetadata row can be
// in, mutated only forward: PENDING -> PROCESSING -> {SUCCESS, FAILURE}.
type IngestionStatus string

const (
	StatusPending    IngestionStatus = "PENDING"
	StatusProcessing IngestionStatus = "PROCESSING"
	StatusSuccess    IngestionStatus = "SUCCESS"
	StatusFailure    IngestionStatus = "FAILURE"
)

// DocumentKind distinguishes the two filing types the ingestion worker
// downloads.
type DocumentKind string

const (
	DocumentAnnualReport DocumentKind = "ANNUAL_REPORT"
	DocumentBRSR         DocumentKind = "BRSR"
)

// IngestionMetadata is one row per downloaded filing PDF.
type IngestionMetadata struct {
	ID            int64           `json:"id" db:"id"`
	CompanyID     int64           `json:"company_id" db:"company_id"`
	ObjectKey     string          `json:"object_key" db:"object_key"`
	Kind          DocumentKind    `json:"kind" db:"kind"`
	ReportYear    int             `json:"report_year" db:"report_year"`
	Status        IngestionStatus `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// DocumentEmbedding is one chunk row. Identity is
// (ObjectKey, PageNumber, ChunkIndex). Created only by the embeddings worker.
type DocumentEmbedding struct {
	ID          int64     `json:"id" db:"id"`
	ObjectKey   string    `json:"object_key" db:"object_key"`
	CompanyName string    `json:"company_name" db:"company_name"`
	ReportYear  int       `json:"report_year" db:"report_year"`
	PageNumber  int       `json:"page_number" db:"page_number"`
	ChunkIndex  int       `json:"chunk_index" db:"chunk_index"`
	Embedding   []float32 `json:"-" db:"embedding"`
	ChunkText   string    `json:"chunk_text" db:"chunk_text"`
}

// Pillar is one of the three top-level ESG dimensions.
type Pillar string

const (
	PillarEnvironmental Pillar = "E"
	PillarSocial        Pillar = "S"
	PillarGovernance    Pillar = "G"
)

// Polarity determines whether a higher or lower raw indicator value is
// better for normalization purposes.
type Polarity string

const (
	PolarityHigherIsBetter Polarity = "higher-is-better"
	PolarityLowerIsBetter  Polarity = "lower-is-better"
)

// PillarForAttribute implements the fixed, total attribute-to-pillar mapping:
// 1..4 -> E, 5..7 -> S, 8..9 -> G.
func PillarForAttribute(attribute int) Pillar {
	switch {
	case attribute >= 1 && attribute <= 4:
		return PillarEnvironmental
	case attribute >= 5 && attribute <= 7:
		return PillarSocial
	case attribute >= 8 && attribute <= 9:
		return PillarGovernance
	default:
		return ""
	}
}

// BRSRIndicatorDefinition is one row of the authoritative, seeded-once
// indicator catalog.
type BRSRIndicatorDefinition struct {
	ID             int64    `json:"id" db:"id"`
	Code           string   `json:"code" db:"code"`
	Attribute      int      `json:"attribute" db:"attribute"`
	ParameterName  string   `json:"parameter_name" db:"parameter_name"`
	Unit           string   `json:"unit" db:"unit"`
	Description    string   `json:"description" db:"description"`
	Pillar         Pillar   `json:"pillar" db:"pillar"`
	Weight         float64  `json:"weight" db:"weight"`
	Polarity       Polarity `json:"polarity" db:"polarity"`
	MinBound       *float64 `json:"min_bound,omitempty" db:"min_bound"`
	MaxBound       *float64 `json:"max_bound,omitempty" db:"max_bound"`
}

// ExtractedIndicator is the LLM's structured output for one
// (company, year, indicator). Identity is (CompanyID, ReportYear,
// IndicatorID); upsert semantics on conflict.
type ExtractedIndicator struct {
	ID             int64     `json:"id" db:"id"`
	CompanyID      int64     `json:"company_id" db:"company_id"`
	ReportYear     int       `json:"report_year" db:"report_year"`
	IndicatorID    int64     `json:"indicator_id" db:"indicator_id"`
	IndicatorCode  string    `json:"indicator_code" db:"indicator_code"`
	ExtractedValue string    `json:"extracted_value" db:"extracted_value"`
	NumericValue   *float64  `json:"numeric_value,omitempty" db:"numeric_value"`
	Unit           string    `json:"unit" db:"unit"`
	Confidence     float64   `json:"confidence" db:"confidence"`
	SourcePages    []int     `json:"source_pages" db:"source_pages"`
	SourceChunks   []int     `json:"source_chunks" db:"source_chunks"`
	Reasoning      string    `json:"reasoning,omitempty" db:"reasoning"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// IndicatorContribution is one line of a pillar score's auditable breakdown.
type IndicatorContribution struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	RawValue     float64 `json:"raw_value"`
	Unit         string  `json:"unit"`
	Normalized   float64 `json:"normalized"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// PillarBreakdown is the auditable per-pillar contribution log.
type PillarBreakdown struct {
	Pillar       Pillar                   `json:"pillar"`
	Score        *float64                 `json:"score"`
	TotalWeight  float64                  `json:"total_weight"`
	Indicators   []IndicatorContribution  `json:"indicators"`
}

// ESGScore is a per (company, year, pillar) aggregate; the overall ESG score
// is persisted on a synthetic "overall" pillar row.
type ESGScore struct {
	ID         int64      `json:"id" db:"id"`
	CompanyID  int64      `json:"company_id" db:"company_id"`
	ReportYear int        `json:"report_year" db:"report_year"`
	Pillar     string     `json:"pillar" db:"pillar"` // "E", "S", "G", or "OVERALL"
	Score      *float64   `json:"score" db:"score"`
	Breakdown  []byte     `json:"breakdown,omitempty" db:"breakdown"` // JSON-encoded []PillarBreakdown, overall row only
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// OverallPillar is the synthetic pillar value used for the row that carries
// the simple mean of E/S/G plus the full breakdown blob.
const OverallPillar = "OVERALL"

// Measurement is one (status, value, time) triple under a telemetry
// snapshot's parent parameter.
type Measurement struct {
	Status string  `json:"status" bson:"status"`
	Value  *string `json:"value" bson:"value"`
	Time   *string `json:"time" bson:"time"`
}

// TelemetrySnapshot is one append-only document produced by scraping one
// industry dashboard URL.
type TelemetrySnapshot struct {
	CompanyName  string                            `json:"company_name" bson:"company_name"`
	IndustryName string                            `json:"industry_name" bson:"industry_name"`
	StateName    string                             `json:"state_name" bson:"state_name"`
	URL          string                             `json:"url" bson:"url"`
	Pollution    map[string]map[string]Measurement `json:"pollution_data" bson:"pollution_data"`
	ScrapedAtUTC string                             `json:"scraped_datetime_utc" bson:"scraped_datetime_utc"`
}

// User is an H principal authenticated via username/password -> bearer token.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Active       bool      `json:"active" db:"active"`
	Admin        bool      `json:"admin" db:"admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// APIKey is an H principal authenticated via a header-transported key; only
// the hash and a short public prefix are persisted.
type APIKey struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Prefix    string     `json:"prefix" db:"prefix"`
	KeyHash   string     `json:"-" db:"key_hash"`
	Scopes    []string   `json:"scopes" db:"scopes"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	Active    bool       `json:"active" db:"active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// DashboardLink is one row of the live-dashboard URL catalog component F's
// scheduler fans out from.
type DashboardLink struct {
	ID           int64  `json:"id" db:"id"`
	CompanyName  string `json:"company_name" db:"company_name"`
	IndustryName string `json:"industry_name" db:"industry_name"`
	StateName    string `json:"state_name" db:"state_name"`
	DetailURL    string `json:"detail_page_url" db:"detail_page_url"`
}

// ShareholderPattern is a supplemented, auxiliary tabular disclosure
// (original_source/Governance/LoadingShareHolderP.py): out of the scoring
// critical path, exposed read-only by H.
type ShareholderPattern struct {
	ID          int64     `json:"id" db:"id"`
	CompanyID   int64     `json:"company_id" db:"company_id"`
	Category    string    `json:"category" db:"category"`
	PercentHeld float64   `json:"percent_held" db:"percent_held"`
	AsOf        time.Time `json:"as_of" db:"as_of"`
}

// CorporateAnnouncement is a supplemented, auxiliary tabular disclosure
// (original_source/Governance/fetchAnnouncements.py).
type CorporateAnnouncement struct {
	ID          int64     `json:"id" db:"id"`
	CompanyID   int64     `json:"company_id" db:"company_id"`
	Subject     string    `json:"subject" db:"subject"`
	AnnouncedAt time.Time `json:"announced_at" db:"announced_at"`
}
