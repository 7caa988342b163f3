package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foundersandcoders/lift/internal/constants"
	lifterrors "github.com/foundersandcoders/lift/internal/errors"
	"github.com/foundersandcoders/lift/internal/migration"
	"github.com/foundersandcoders/lift/internal/models"
)

// SQL implements the entry and settings half of Provider over database/sql.
// Entries are normalized on the way in and on the way out.
type SQL struct {
	DB      *sql.DB
	Dialect migration.Dialect
	Now     func() time.Time
}

func (s *SQL) q(query string) string {
	return migration.Rebind(s.Dialect, query)
}

func (s *SQL) now() string {
	if s.Now != nil {
		return s.Now().UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *SQL) GetSettings() (models.Settings, error) {
	rows, err := s.DB.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	var settings models.Settings
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingUsername:
			settings.Username = value
		case constants.SettingUserEmail:
			settings.UserEmail = value
		case constants.SettingManagerName:
			settings.ManagerName = value
		case constants.SettingManagerEmail:
			settings.ManagerEmail = value
		case constants.SettingSnoozed:
			if value != "" {
				settings.SnoozedQuestions = strings.Split(value, ",")
			}
		}
	}
	return settings, rows.Err()
}

func (s *SQL) SaveSettings(settings models.Settings) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert := s.q(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`)
	values := [][2]string{
		{constants.SettingUsername, settings.Username},
		{constants.SettingUserEmail, settings.UserEmail},
		{constants.SettingManagerName, settings.ManagerName},
		{constants.SettingManagerEmail, settings.ManagerEmail},
		{constants.SettingSnoozed, strings.Join(settings.SnoozedQuestions, ",")},
	}
	for _, kv := range values {
		if _, err := tx.Exec(upsert, kv[0], kv[1]); err != nil {
			return fmt.Errorf("saving setting %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}

func (s *SQL) AddEntry(e models.Entry) error {
	e = e.Normalize()
	adverbial, err := encodeAdverbial(e.Atoms.Adverbial)
	if err != nil {
		return err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now()
	_, err = tx.Exec(s.q(`
		INSERT INTO entries (id, input, is_public, subject, verb, object, adverbial, category,
		                     preset_id, is_resolved, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM entries), ?, ?)`),
		e.ID, e.Input, e.IsPublic, e.Atoms.Subject, e.Atoms.Verb, e.Atoms.Object, adverbial, e.Category,
		e.PresetID, e.IsResolved, now, now)
	if err != nil {
		return fmt.Errorf("inserting entry %s: %w", e.ID, err)
	}
	if err := s.writeActions(tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQL) UpdateEntry(e models.Entry) error {
	e = e.Normalize()
	adverbial, err := encodeAdverbial(e.Atoms.Adverbial)
	if err != nil {
		return err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(s.q(`
		UPDATE entries SET input = ?, is_public = ?, subject = ?, verb = ?, object = ?, adverbial = ?,
		                   category = ?, preset_id = ?, is_resolved = ?, updated_at = ?
		WHERE id = ?`),
		e.Input, e.IsPublic, e.Atoms.Subject, e.Atoms.Verb, e.Atoms.Object, adverbial,
		e.Category, e.PresetID, e.IsResolved, s.now(), e.ID)
	if err != nil {
		return fmt.Errorf("updating entry %s: %w", e.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lifterrors.NotFound("statement", e.ID)
	}
	if _, err := tx.Exec(s.q("DELETE FROM actions WHERE entry_id = ?"), e.ID); err != nil {
		return err
	}
	if err := s.writeActions(tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQL) writeActions(tx *sql.Tx, e models.Entry) error {
	insert := s.q(`
		INSERT INTO actions (id, entry_id, position, creation_date, by_date, action, completed,
		                     gratitude_sent, gratitude_message, gratitude_sent_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, a := range e.Actions {
		if _, err := tx.Exec(insert, a.ID, e.ID, i, a.CreationDate, a.ByDate, a.Action, a.Completed,
			a.GratitudeSent, a.GratitudeMessage, a.GratitudeSentDate); err != nil {
			return fmt.Errorf("writing action %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *SQL) DeleteEntry(id string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.q("DELETE FROM actions WHERE entry_id = ?"), id); err != nil {
		return err
	}
	res, err := tx.Exec(s.q("DELETE FROM entries WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("deleting entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lifterrors.NotFound("statement", id)
	}
	return tx.Commit()
}

const entryColumns = `id, input, is_public, subject, verb, object, adverbial, category, preset_id, is_resolved`

func (s *SQL) GetEntry(id string) (models.Entry, error) {
	row := s.DB.QueryRow(s.q("SELECT "+entryColumns+" FROM entries WHERE id = ?"), id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, lifterrors.NotFound("statement", id)
	}
	if err != nil {
		return models.Entry{}, err
	}

	actions, err := s.actionsByEntry(s.q("SELECT entry_id, "+actionColumns+" FROM actions WHERE entry_id = ? ORDER BY position"), id)
	if err != nil {
		return models.Entry{}, err
	}
	e.Actions = actions[id]
	return e, nil
}

// GetAllEntries returns every entry in creation order.
func (s *SQL) GetAllEntries() ([]models.Entry, error) {
	rows, err := s.DB.Query("SELECT " + entryColumns + " FROM entries ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	actions, err := s.actionsByEntry("SELECT entry_id, " + actionColumns + " FROM actions ORDER BY entry_id, position")
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Actions = actions[entries[i].ID]
	}
	return entries, nil
}

const actionColumns = `id, creation_date, by_date, action, completed, gratitude_sent, gratitude_message, gratitude_sent_date`

func (s *SQL) actionsByEntry(query string, args ...any) (map[string][]models.Action, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]models.Action)
	for rows.Next() {
		var entryID string
		var a models.Action
		if err := rows.Scan(&entryID, &a.ID, &a.CreationDate, &a.ByDate, &a.Action, &a.Completed,
			&a.GratitudeSent, &a.GratitudeMessage, &a.GratitudeSentDate); err != nil {
			return nil, err
		}
		out[entryID] = append(out[entryID], a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (models.Entry, error) {
	var e models.Entry
	var adverbial string
	if err := row.Scan(&e.ID, &e.Input, &e.IsPublic, &e.Atoms.Subject, &e.Atoms.Verb, &e.Atoms.Object,
		&adverbial, &e.Category, &e.PresetID, &e.IsResolved); err != nil {
		return models.Entry{}, err
	}
	if adverbial != "" {
		if err := json.Unmarshal([]byte(adverbial), &e.Atoms.Adverbial); err != nil {
			return models.Entry{}, fmt.Errorf("decoding adverbial of %s: %w", e.ID, err)
		}
	}
	return e.Normalize(), nil
}

func encodeAdverbial(words []string) (string, error) {
	if words == nil {
		words = []string{}
	}
	b, err := json.Marshal(words)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
