// Package persistent implements keyspace schema storage backed by a
// bbolt database. Schema records survive application restarts and are
// installed back by the keyspace manager on startup.
package persistent

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/molyee/scylladb/pkg/keyspace"
	"github.com/molyee/scylladb/pkg/locator"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store is a wrapper around persistent K:V db that allows storing,
// retrieving and removing keyspace schema records.
type Store struct {
	db *bbolt.DB

	l *zap.Logger
}

var keyspacesBucket = []byte("keyspaces")

// NewStore creates, initializes and returns a new Store instance.
//
// The elements of the instance are stored in bolt DB.
func NewStore(path string, opts ...Option) (*Store, error) {
	cfg := defaultCfg()

	for _, o := range opts {
		o(cfg)
	}

	db, err := bbolt.Open(path, 0600,
		&bbolt.Options{
			Timeout: cfg.timeout,
		})
	if err != nil {
		return nil, fmt.Errorf("can't open bbolt at %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists(keyspacesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("could not init keyspace bucket: %w", err)
	}

	return &Store{
		db: db,
		l:  cfg.l,
	}, nil
}

type record struct {
	Strategy string `yaml:"strategy"`

	Options map[string]string `yaml:"options,omitempty"`

	Version string `yaml:"version"`
}

// Put saves the keyspace schema record, replacing any previous record
// under the same name.
func (s *Store) Put(ks *keyspace.Keyspace) error {
	rec := record{
		Strategy: ks.Strategy(),
		Options:  ks.Options().Map(),
		Version:  ks.Version().String(),
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("could not encode keyspace record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(keyspacesBucket).Put([]byte(ks.Name()), data)
	})
	if err != nil {
		return err
	}

	s.l.Debug("keyspace record saved",
		zap.String("keyspace", ks.Name()),
		zap.Stringer("version", ks.Version()))

	return nil
}

// Get reads the keyspace schema record by name.
//
// Returns keyspace.ErrNotFound if there is no record under the name.
func (s *Store) Get(name string) (*keyspace.Keyspace, error) {
	var ks *keyspace.Keyspace

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(keyspacesBucket).Get([]byte(name))
		if data == nil {
			return keyspace.ErrNotFound
		}

		var err error

		ks, err = restoreKeyspace(name, data)

		return err
	})
	if err != nil {
		return nil, err
	}

	return ks, nil
}

// Delete removes the keyspace schema record. Removing a missing record
// is not an error.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(keyspacesBucket).Delete([]byte(name))
	})
}

// List reads all keyspace schema records. Bucket keys are byte-sorted,
// so the result is sorted by keyspace name.
func (s *Store) List() ([]*keyspace.Keyspace, error) {
	var kss []*keyspace.Keyspace

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(keyspacesBucket).Cursor()

		for k, v := c.First(); k != nil; k, v = c.Next() {
			ks, err := restoreKeyspace(string(k), v)
			if err != nil {
				return err
			}

			kss = append(kss, ks)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return kss, nil
}

// Close closes database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func restoreKeyspace(name string, data []byte) (*keyspace.Keyspace, error) {
	var rec record

	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("could not decode keyspace record %s: %w", name, err)
	}

	version, err := uuid.Parse(rec.Version)
	if err != nil {
		return nil, fmt.Errorf("could not parse schema version of keyspace %s: %w", name, err)
	}

	return keyspace.Restore(name, rec.Strategy, locator.NewConfig(rec.Options), version), nil
}
