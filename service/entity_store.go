package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
)

const (
	promoterQuery = `SELECT id, COALESCE(name_en, ''), COALESCE(name_ar, ''), COALESCE(id_card_number, ''),
		COALESCE(passport_number, ''), COALESCE(nationality, ''), COALESCE(email, ''), COALESCE(mobile_number, ''),
		COALESCE(id_card_url, ''), COALESCE(passport_url, ''), COALESCE(signature_url, '')
		FROM promoters WHERE id = $1`

	partyQuery = `SELECT id, COALESCE(name_en, ''), COALESCE(name_ar, ''), COALESCE(crn, ''), COALESCE(type, ''),
		COALESCE(address, ''), COALESCE(contact_email, ''), COALESCE(contact_phone, ''),
		COALESCE(logo_url, ''), COALESCE(stamp_url, ''), COALESCE(signatory_name, '')
		FROM parties WHERE id = $1`
)

// SQLEntityStore reads promoters and parties from PostgreSQL.
type SQLEntityStore struct {
	db *sql.DB
}

func NewSQLEntityStore(db *sql.DB) *SQLEntityStore {
	return &SQLEntityStore{db: db}
}

func (s *SQLEntityStore) GetPromoter(ctx context.Context, id string) (*model.Promoter, error) {
	var p model.Promoter
	err := s.db.QueryRowContext(ctx, promoterQuery, id).Scan(
		&p.ID, &p.NameEn, &p.NameAr, &p.IDCardNumber, &p.PassportNumber, &p.Nationality,
		&p.Email, &p.Mobile, &p.IDCardURL, &p.PassportURL, &p.SignatureURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promoter: %w", err)
	}
	return &p, nil
}

func (s *SQLEntityStore) GetParty(ctx context.Context, id string) (*model.Party, error) {
	var p model.Party
	err := s.db.QueryRowContext(ctx, partyQuery, id).Scan(
		&p.ID, &p.NameEn, &p.NameAr, &p.CRNumber, &p.Type, &p.Address,
		&p.Email, &p.Phone, &p.LogoURL, &p.StampURL, &p.Signatory,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	return &p, nil
}
