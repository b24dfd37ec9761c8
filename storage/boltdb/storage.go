package boltdb

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/oauth2"
)

type LoggerFn func(string, ...interface{})

// DefaultFile is the database file name under the application data path.
const DefaultFile = "schedule.bdb"

const (
	rootBucket = "auth"
	tokenKey   = "google-token"
)

type repo struct {
	d    *bolt.DB
	root []byte
	path string
	log  LoggerFn
	err  LoggerFn
}

// Config
type Config struct {
	Path  string
	LogFn LoggerFn
	ErrFn LoggerFn
}

// New returns a new token repository
func New(c Config) *repo {
	b := repo{
		root: []byte(rootBucket),
		path: c.Path,
		log:  func(string, ...interface{}) {},
		err:  func(string, ...interface{}) {},
	}
	if c.ErrFn != nil {
		b.err = c.ErrFn
	}
	if c.LogFn != nil {
		b.log = c.LogFn
	}

	return &b
}

func (r *repo) open() error {
	var err error
	r.d, err = bolt.Open(r.path, 0600, nil)
	if err != nil {
		return fmt.Errorf("could not open db %s %w", r.path, err)
	}
	err = r.d.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(r.root)
		if err != nil {
			return fmt.Errorf("unable to create root bucket %s: %w", r.root, err)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable root bucket %s", r.root)
		}
		return nil
	})
	return err
}

// close closes the boltdb database if possible.
func (r *repo) close() error {
	if r.d == nil {
		return nil
	}
	return r.d.Close()
}

// SaveToken stores the OAuth token, replacing whatever was there.
func (r *repo) SaveToken(tok *oauth2.Token) error {
	if err := r.open(); err != nil {
		return err
	}
	defer r.close()

	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("unable to serialize token: %w", err)
	}
	err = r.d.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		return root.Put([]byte(tokenKey), raw)
	})
	if err == nil {
		r.log("saved token to %s", r.path)
	}
	return err
}

// LoadToken returns the stored OAuth token, or an error when no
// authorization happened yet.
func (r *repo) LoadToken() (*oauth2.Token, error) {
	if err := r.open(); err != nil {
		return nil, err
	}
	defer r.close()

	tok := new(oauth2.Token)
	err := r.d.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		raw := root.Get([]byte(tokenKey))
		if raw == nil {
			return fmt.Errorf("no token stored in %s", r.path)
		}
		return json.Unmarshal(raw, tok)
	})
	if err != nil {
		return nil, err
	}
	return tok, nil
}
