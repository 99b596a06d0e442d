package store

import (
	"database/sql"

	"kidexam/internal/model"
)

// ListKids returns all kids sorted by nickname.
func (s *Store) ListKids() ([]model.Kid, error) {
	rows, err := s.db.Query(
		`SELECT kid_id, nickname, birth_year, birth_month, disabled, rev
		 FROM kids ORDER BY nickname`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var kids []model.Kid
	for rows.Next() {
		var k model.Kid
		if err := rows.Scan(&k.KidID, &k.Nickname, &k.BirthYear, &k.BirthMonth, &k.Disabled, &k.Rev); err != nil {
			return nil, err
		}
		kids = append(kids, k)
	}
	return kids, rows.Err()
}

// GetKid returns a kid by id, or ErrNotFound.
func (s *Store) GetKid(kidID string) (model.Kid, error) {
	var k model.Kid
	err := s.db.QueryRow(
		`SELECT kid_id, nickname, birth_year, birth_month, disabled, rev
		 FROM kids WHERE kid_id = ?`, kidID,
	).Scan(&k.KidID, &k.Nickname, &k.BirthYear, &k.BirthMonth, &k.Disabled, &k.Rev)
	if err == sql.ErrNoRows {
		return k, ErrNotFound
	}
	return k, err
}

// AddKid inserts a new kid at revision 1.
func (s *Store) AddKid(k model.Kid) error {
	_, err := s.db.Exec(
		`INSERT INTO kids (kid_id, nickname, birth_year, birth_month, disabled)
		 VALUES (?, ?, ?, ?, ?)`,
		k.KidID, k.Nickname, k.BirthYear, k.BirthMonth, k.Disabled,
	)
	return err
}

// UpdateKid writes the kid's mutable fields, guarded by the revision the
// caller last saw. A stale revision returns ErrConflict; a missing kid
// returns ErrNotFound.
func (s *Store) UpdateKid(k model.Kid) error {
	res, err := s.db.Exec(
		`UPDATE kids SET nickname = ?, birth_year = ?, birth_month = ?, disabled = ?, rev = rev + 1
		 WHERE kid_id = ? AND rev = ?`,
		k.Nickname, k.BirthYear, k.BirthMonth, k.Disabled, k.KidID, k.Rev,
	)
	if err != nil {
		return err
	}
	return s.checkRevGuard(res, "kids", "kid_id", k.KidID)
}

// DeleteKid removes a kid, guarded by revision like UpdateKid.
func (s *Store) DeleteKid(kidID string, rev int64) error {
	res, err := s.db.Exec(`DELETE FROM kids WHERE kid_id = ? AND rev = ?`, kidID, rev)
	if err != nil {
		return err
	}
	return s.checkRevGuard(res, "kids", "kid_id", kidID)
}

// checkRevGuard distinguishes "row gone" from "row moved on" after a
// rev-guarded write that touched nothing.
func (s *Store) checkRevGuard(res sql.Result, table, idCol, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE `+idCol+` = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
