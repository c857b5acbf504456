package es

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/domain"
	"github.com/bytedance/sonic"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

const bulkFlushBytes = 5 << 20

// Indexer creates the torrent index and loads snapshots into it.
// It does not track datastore changes.
type Indexer struct {
	client    *elasticsearch.TypedClient
	indexName string
	builder   *IndexBuilder
}

func NewIndexer(client *elasticsearch.TypedClient, indexName, analyzer string) *Indexer {
	return &Indexer{
		client:    client,
		indexName: indexName,
		builder:   NewIndexBuilder(analyzer),
	}
}

// EnsureIndex creates the index with the torrent mapping. created is false when it already existed.
func (ix *Indexer) EnsureIndex(ctx context.Context) (created bool, err error) {
	exists, err := ix.client.Indices.Exists(ix.indexName).Do(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Info("Index already exists", "index", ix.indexName)
		return false, nil
	}

	settings := ix.builder.buildSettings()
	mappings := ix.builder.buildMapping()

	res, err := ix.client.Indices.Create(ix.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return false, fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created", "index", ix.indexName)
	return true, nil
}

// BulkStats counts the outcome of one IndexTorrents call.
type BulkStats struct {
	Indexed int64
	Failed  int64
}

// IndexTorrents writes torrents as documents keyed by torrent id.
// The call returns once the documents are visible to searches.
func (ix *Indexer) IndexTorrents(ctx context.Context, torrents []domain.Torrent) (BulkStats, error) {
	if len(torrents) == 0 {
		return BulkStats{}, nil
	}

	var indexed, failed atomic.Int64

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:      ix.indexName,
		Client:     ix.client,
		NumWorkers: 2,
		FlushBytes: bulkFlushBytes,
		Refresh:    "wait_for",
		OnError: func(ctx context.Context, err error) {
			slog.Error("Bulk request failed", "index", ix.indexName, "error", err)
		},
	})
	if err != nil {
		return BulkStats{}, fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	onFailure := func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
		failed.Add(1)
		if err == nil {
			err = fmt.Errorf("%s: %s", res.Error.Type, res.Error.Reason)
		}
		slog.Error("Document rejected", "id", item.DocumentID, "status", res.Status, "error", err)
	}

	for _, t := range torrents {
		doc := NewTorrentDocument(t)
		body, err := sonic.Marshal(doc)
		if err != nil {
			failed.Add(1)
			slog.Error("Failed to encode document", "id", doc.ID, "error", err)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.DocID(),
			Body:       bytes.NewReader(body),
			OnSuccess: func(context.Context, esutil.BulkIndexerItem, esutil.BulkIndexerResponseItem) {
				indexed.Add(1)
			},
			OnFailure: onFailure,
		})
		if err != nil {
			_ = bi.Close(ctx)
			return BulkStats{Indexed: indexed.Load(), Failed: failed.Load()}, fmt.Errorf("failed to queue document %s: %w", doc.DocID(), err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return BulkStats{Indexed: indexed.Load(), Failed: failed.Load()}, fmt.Errorf("failed to flush bulk indexer: %w", err)
	}

	stats := BulkStats{Indexed: indexed.Load(), Failed: failed.Load()}
	slog.Info("Bulk indexing completed", "index", ix.indexName, "indexed", stats.Indexed, "failed", stats.Failed)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("failed to index %d of %d torrents", stats.Failed, len(torrents))
	}
	return stats, nil
}
