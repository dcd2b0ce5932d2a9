package bolt

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/oasislabs/oracle-bridge/errors"
	"github.com/oasislabs/oracle-bridge/log"
	pkgerrors "github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucket = []byte("bridge")

type Props struct {
	Context context.Context
	Logger  log.Logger

	// Path is the location of the database file. It is created
	// along with its parent directory if it does not exist
	Path string

	// Timeout is how long to wait for the file lock
	Timeout time.Duration
}

// Store implements core.Store on an embedded bbolt database
type Store struct {
	db     *bolt.DB
	logger log.Logger
}

func NewStore(props Props) (*Store, error) {
	if dir := filepath.Dir(props.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	timeout := props.Timeout
	if timeout == 0 {
		timeout = time.Second
	}

	db, err := bolt.Open(props.Path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open database %s", props.Path)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrap(err, "failed to create bucket")
	}

	logger := props.Logger.ForClass("store/bolt", "Store")
	logger.Info(props.Context, "database opened", log.MapFields{
		"call_type": "OpenSuccess",
		"path":      props.Path,
	})

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Name() string {
	return "store.bolt.Store"
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, errors.Err) {
	var value []byte
	var found bool

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v == nil {
			return nil
		}

		// v is only valid for the lifetime of the transaction
		value = make([]byte, len(v))
		copy(value, v)
		found = true
		return nil
	})
	if err != nil {
		return nil, false, errors.New(errors.ErrStoreGet,
			pkgerrors.Wrapf(err, "failed to get key %s", key))
	}

	return value, found, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) errors.Err {
	if value == nil {
		value = []byte{}
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), value)
	})
	if err != nil {
		err := errors.New(errors.ErrStorePut, pkgerrors.Wrapf(err, "failed to put key %s", key))
		s.logger.Debug(ctx, "bolt put failed", log.MapFields{
			"call_type": "PutFailure",
			"key":       key,
		}, err)
		return err
	}

	return nil
}

// Close releases the database file
func (s *Store) Close() error {
	return s.db.Close()
}
