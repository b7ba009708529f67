package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/sqlutil"
)

// Owned returns every ownership record of a user, keyed by lower-cased
// jump name. A user with no records gets an empty map, not an error.
func (d *Database) Owned(userID string) (map[string]model.OwnershipEntry, error) {
	rows, err := d.db.Query(
		"SELECT jump, proof, time_given FROM owned WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("query owned jumps: %w", err)
	}
	defer rows.Close()

	owned := make(map[string]model.OwnershipEntry)
	for rows.Next() {
		var jump string
		var entry model.OwnershipEntry
		if err := rows.Scan(&jump, &entry.Proof, &entry.TimeGiven); err != nil {
			return nil, err
		}
		owned[jump] = entry
	}
	return owned, rows.Err()
}

// HasRecords reports whether the user has any ownership rows at all. A
// first give greets the user; this tells the caller whether it is one.
func (d *Database) HasRecords(userID string) (bool, error) {
	var n int
	err := d.db.QueryRow(
		"SELECT COUNT(*) FROM owned WHERE user_id = ?", userID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Give records ownership of a jump. The jump name must already be the
// catalog key (lower-cased canonical name); duplicate claims are rejected.
func (d *Database) Give(userID, jump, proof, timeGiven string) error {
	res, err := d.db.Exec(`
		INSERT INTO owned (user_id, jump, proof, time_given)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, jump) DO NOTHING
	`, userID, jump, proof, timeGiven)
	if err != nil {
		return fmt.Errorf("record ownership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyOwned
	}
	return nil
}

// Del removes an ownership record.
func (d *Database) Del(userID, jump string) error {
	res, err := d.db.Exec(
		"DELETE FROM owned WHERE user_id = ? AND jump = ?", userID, jump)
	if err != nil {
		return fmt.Errorf("remove ownership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotOwned
	}
	return nil
}

// GetProof returns the proof link for an owned jump. ErrNotOwned if the
// user never claimed it, ErrNoProof if the claim carries no link.
func (d *Database) GetProof(userID, jump string) (string, error) {
	var proof string
	err := d.db.QueryRow(
		"SELECT proof FROM owned WHERE user_id = ? AND jump = ?",
		userID, jump).Scan(&proof)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotOwned
	}
	if err != nil {
		return "", err
	}
	if proof == "" {
		return "", ErrNoProof
	}
	return proof, nil
}

// SetProof updates the proof link on an existing ownership record.
func (d *Database) SetProof(userID, jump, proof string) error {
	res, err := d.db.Exec(
		"UPDATE owned SET proof = ? WHERE user_id = ? AND jump = ?",
		proof, userID, jump)
	if err != nil {
		return fmt.Errorf("set proof: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotOwned
	}
	return nil
}

// Prune drops the given ownership records of a user in one statement.
// Used when a list over the user's jumps finds entries the catalog no
// longer contains.
func (d *Database) Prune(userID string, jumps []string) error {
	if len(jumps) == 0 {
		return nil
	}
	placeholders, args := sqlutil.InClauseArgs(jumps)
	_, err := d.db.Exec(
		"DELETE FROM owned WHERE user_id = ? AND jump IN ("+placeholders+")",
		append([]any{userID}, args...)...)
	if err != nil {
		return fmt.Errorf("prune ownership: %w", err)
	}
	return nil
}
