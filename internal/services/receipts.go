package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/finhive/internal/blobstore"
	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/dmitrijs2005/finhive/internal/netx"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"github.com/shopspring/decimal"
)

// download is a test seam for netx.Download.
var download = netx.Download

// Blobs stores receipt files. *blobstore.S3Store implements it.
type Blobs interface {
	URL(key string) string
	KeyFromURL(url string) (string, bool)
	Put(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewReceipt holds the caller-supplied fields of a receipt and its file.
type NewReceipt struct {
	Title    string
	Amount   decimal.Decimal
	Date     *models.Date
	Category string
	Notes    string
	FileName string
	FileType string
	Data     []byte
}

// ReceiptService keeps the file inline in the local record. The mirrored
// row points at object storage when Blobs is configured and carries an
// empty file_url otherwise.
type ReceiptService struct {
	*ownedCollection[models.Receipt, *models.Receipt]
	mirror mirror.Receipts
	blobs  Blobs
	now    timex.Clock
	newID  func() string
	log    logging.Logger
}

// NewReceiptService builds the service. blobs may be nil.
func NewReceiptService(db *localstore.DB, m mirror.Receipts, blobs Blobs, log logging.Logger, now timex.Clock) *ReceiptService {
	s := &ReceiptService{
		mirror: m,
		blobs:  blobs,
		now:    now,
		newID:  newID,
		log:    log.With("collection", models.KeyReceipts),
	}
	s.ownedCollection = newOwned[models.Receipt, *models.Receipt](db, models.KeyReceipts, remoteOps[models.Receipt]{
		selectAll: m.SelectReceipts,
		put:       s.mirrorReceipt,
		delete:    s.deleteRemote,
	}, log)
	return s
}

func (s *ReceiptService) Add(ctx context.Context, userID string, in NewReceipt) (models.Receipt, error) {
	now := s.now()
	r := models.Receipt{
		ID:        s.newID(),
		UserID:    userID,
		Title:     in.Title,
		Amount:    in.Amount,
		Category:  in.Category,
		Notes:     in.Notes,
		FileName:  in.FileName,
		FileType:  in.FileType,
		FileSize:  int64(len(in.Data)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Date != nil {
		r.Date = *in.Date
	} else {
		r.Date = models.DateOf(now)
	}
	if len(in.Data) > 0 {
		r.FileURL = encodeDataURI(in.FileType, in.Data)
	}
	if err := r.Validate(); err != nil {
		return models.Receipt{}, err
	}
	return s.add(ctx, r)
}

// File returns the file of a local receipt. Receipts pulled from the mirror
// reference object storage instead of an inline copy; their file is
// downloaded through a presigned link.
func (s *ReceiptService) File(ctx context.Context, id, userID string) (contentType string, data []byte, err error) {
	for _, r := range s.local(ctx, userID) {
		if r.ID != id {
			continue
		}
		if r.FileURL == "" {
			return "", nil, fmt.Errorf("%w: receipt %s has no file", common.ErrNotFound, id)
		}
		if s.blobs != nil {
			if key, ok := s.blobs.KeyFromURL(r.FileURL); ok {
				return s.fetch(ctx, r, key)
			}
		}
		return decodeDataURI(r.FileURL)
	}
	return "", nil, fmt.Errorf("%w: receipt %s", common.ErrNotFound, id)
}

func (s *ReceiptService) fetch(ctx context.Context, r models.Receipt, key string) (string, []byte, error) {
	url, err := s.blobs.PresignGet(ctx, key)
	if err != nil {
		return "", nil, err
	}
	data, err := download(ctx, url)
	if err != nil {
		return "", nil, fmt.Errorf("failed to download receipt %s: %w", r.ID, err)
	}
	return r.FileType, data, nil
}

// RemoteURL returns a short-lived download link for the mirrored file.
func (s *ReceiptService) RemoteURL(ctx context.Context, id, userID string) (string, error) {
	if s.blobs == nil {
		return "", common.ErrBlobStoreDisabled
	}
	r, err := s.mirror.SelectReceipt(ctx, id, userID)
	if err != nil {
		return "", err
	}
	key, ok := s.blobs.KeyFromURL(r.FileURL)
	if !ok {
		return "", fmt.Errorf("%w: receipt %s has no stored file", common.ErrNotFound, id)
	}
	return s.blobs.PresignGet(ctx, key)
}

// mirrorReceipt uploads the inline file, then inserts the row referencing it.
func (s *ReceiptService) mirrorReceipt(ctx context.Context, r models.Receipt) error {
	inline := r.FileURL
	r.FileURL = ""

	if s.blobs != nil && strings.HasPrefix(inline, "data:") {
		contentType, data, err := decodeDataURI(inline)
		if err != nil {
			return fmt.Errorf("receipt %s: %w", r.ID, err)
		}
		key := blobstore.Key(r.UserID, r.ID, r.CreatedAt, r.FileName)
		if err := s.blobs.Put(ctx, key, contentType, data); err != nil {
			return err
		}
		r.FileURL = s.blobs.URL(key)
	}
	return s.mirror.InsertReceipt(ctx, r)
}

// deleteRemote removes the stored file before the row that references it.
func (s *ReceiptService) deleteRemote(ctx context.Context, id, userID string) error {
	if s.blobs != nil {
		r, err := s.mirror.SelectReceipt(ctx, id, userID)
		switch {
		case errors.Is(err, common.ErrNotFound):
			return nil
		case err != nil:
			return err
		}
		if key, ok := s.blobs.KeyFromURL(r.FileURL); ok {
			if err := s.blobs.Delete(ctx, key); err != nil {
				return err
			}
		}
	}

	fileURL, err := s.mirror.DeleteReceipt(ctx, id, userID)
	if err != nil {
		return err
	}
	if fileURL != "" && s.blobs == nil {
		s.log.Warn(ctx, "stored receipt file left behind, blob store disabled", "receipt", id, "file_url", fileURL)
	}
	return nil
}
