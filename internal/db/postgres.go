package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/partnerkit/adcatalog/internal/models"
)

// Postgres wraps a postgres DB connection to the content backend.
type Postgres struct {
	DB *sql.DB
}

// schemaSQL sets up the necessary tables if they don't exist. Localized
// fields are stored as JSONB maps keyed by language code; category
// memberships as text arrays.
const schemaSQL = `CREATE TABLE IF NOT EXISTS entities (
    slug TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    website TEXT,
    min_payout DOUBLE PRECISION NOT NULL DEFAULT 0,
    description JSONB,
    pros JSONB,
    formats TEXT[],
    verticals TEXT[],
    service_types TEXT[],
    format_ratings JSONB,
    support_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    offers_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    promo_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    rates_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS creatives (
    slug TEXT PRIMARY KEY,
    slot_key TEXT NOT NULL,
    audience TEXT,
    language TEXT,
    desktop_image TEXT,
    mobile_image TEXT,
    destination_url TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities (kind) WHERE active = true;
CREATE INDEX IF NOT EXISTS idx_creatives_slot_key ON creatives (slot_key) WHERE active = true;
`

// InitPostgres connects to Postgres with connection pooling configuration.
func InitPostgres(dsn string, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (*Postgres, error) {
	// Register the otelsql wrapper for postgres
	driverName, err := otelsql.Register("postgres",
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	p := &Postgres{DB: db}
	if err := p.ensureSchema(); err != nil {
		return nil, err
	}
	zap.L().Info("Connected to Postgres",
		zap.Int("max_open_conns", maxOpenConns),
		zap.Int("max_idle_conns", maxIdleConns))
	return p, nil
}

// Close terminates the Postgres connection.
func (p *Postgres) Close() {
	if p != nil && p.DB != nil {
		if err := p.DB.Close(); err != nil {
			zap.L().Error("postgres close", zap.Error(err))
		}
	}
}

// ensureSchema creates the required tables if they do not exist.
func (p *Postgres) ensureSchema() error {
	ctx := context.Background()
	if _, err := p.DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// LoadEntities retrieves active catalog entities. Row order is the fetch
// order rankings tie-break on, so it is pinned by the query.
func (p *Postgres) LoadEntities() ([]models.Entity, error) {
	rows, err := p.DB.QueryContext(context.Background(),
		`SELECT slug, kind, name, website, min_payout, description, pros,
		        formats, verticals, service_types, format_ratings,
		        support_rating, offers_rating, promo_rating, rates_rating
		   FROM entities WHERE active ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entities []models.Entity
	for rows.Next() {
		var e models.Entity
		var website sql.NullString
		var description, pros, formatRatings sql.NullString
		var formats, verticals, serviceTypes pq.StringArray
		if err := rows.Scan(&e.Slug, &e.Kind, &e.Name, &website, &e.MinPayout,
			&description, &pros, &formats, &verticals, &serviceTypes, &formatRatings,
			&e.Ratings.Support, &e.Ratings.Offers, &e.Ratings.PromoMaterials, &e.Ratings.Rates); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		if website.Valid {
			e.Website = website.String
		}
		if description.Valid {
			if err := json.Unmarshal([]byte(description.String), &e.Description); err != nil {
				return nil, fmt.Errorf("parse description for %s: %w", e.Slug, err)
			}
		}
		if pros.Valid {
			if err := json.Unmarshal([]byte(pros.String), &e.Pros); err != nil {
				return nil, fmt.Errorf("parse pros for %s: %w", e.Slug, err)
			}
		}
		if formatRatings.Valid {
			if err := json.Unmarshal([]byte(formatRatings.String), &e.FormatRatings); err != nil {
				return nil, fmt.Errorf("parse format_ratings for %s: %w", e.Slug, err)
			}
		}
		e.Formats = toCategoryKeys(formats)
		e.Verticals = toCategoryKeys(verticals)
		e.ServiceTypes = toCategoryKeys(serviceTypes)
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}
	return entities, nil
}

// LoadCreatives retrieves active ad creatives. As with entities, the row
// order becomes the slot pool order the rotation rule indexes into.
func (p *Postgres) LoadCreatives() ([]models.Creative, error) {
	rows, err := p.DB.QueryContext(context.Background(),
		`SELECT slug, slot_key, audience, language, desktop_image, mobile_image, destination_url
		   FROM creatives WHERE active ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("query creatives: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var creatives []models.Creative
	for rows.Next() {
		var c models.Creative
		var audience, language, desktop, mobile sql.NullString
		if err := rows.Scan(&c.Slug, &c.SlotKey, &audience, &language, &desktop, &mobile, &c.DestinationURL); err != nil {
			return nil, fmt.Errorf("scan creative: %w", err)
		}
		if audience.Valid {
			c.Audience = audience.String
		}
		if language.Valid {
			c.Language = models.LangCode(language.String)
		}
		if desktop.Valid {
			c.DesktopImage = desktop.String
		}
		if mobile.Valid {
			c.MobileImage = mobile.String
		}
		creatives = append(creatives, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creatives: %w", err)
	}
	return creatives, nil
}

func toCategoryKeys(arr pq.StringArray) []models.CategoryKey {
	if len(arr) == 0 {
		return nil
	}
	keys := make([]models.CategoryKey, len(arr))
	for i, s := range arr {
		keys[i] = models.CategoryKey(s)
	}
	return keys
}
