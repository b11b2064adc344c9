// Package sqlite provides the durable vector index and document store
// backed by a single SQLite database.
//
// Embeddings are L2-normalised before they are written, so the dot
// product computed during search is exactly cosine similarity. Search
// is an exact brute-force scan, which is fast enough for the personal
// collection sizes this tool targets and avoids approximate-recall
// surprises.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lore-labs/lore-cli/internal/adapters/driven/index/sqlite/migrations"
	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
)

// Ensure Store implements both persistence interfaces.
var (
	_ driven.VectorIndex   = (*Store)(nil)
	_ driven.DocumentStore = (*Store)(nil)
)

// Store is the SQLite-backed vector index and document metadata store.
type Store struct {
	db         *sql.DB
	path       string
	dimensions int
}

// NewStore opens (or creates) the index database at dataDir with the
// given embedding dimensionality. If dataDir is empty, defaults to
// ~/.lore/data.
func NewStore(dataDir string, dimensions int) (*Store, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}

	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lore", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode lets searches run concurrently with an in-flight upsert,
	// observing a consistent pre- or post-write snapshot.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		dimensions: dimensions,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Vector Index ====================

// Upsert replaces all entries for the document in one transaction.
// Readers never observe a partially-written document.
func (s *Store) Upsert(ctx context.Context, documentID string, chunks []domain.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("%w: %d chunks but %d embeddings", domain.ErrInvalidInput, len(chunks), len(embeddings))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("clearing previous entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (chunk_id, document_id, filename, position, start_offset, end_offset, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		if len(embeddings[i]) != s.dimensions {
			return fmt.Errorf("%w: embedding %d has %d dimensions, index expects %d",
				domain.ErrInvalidInput, i, len(embeddings[i]), s.dimensions)
		}

		blob := float32SliceToBytes(normalise(embeddings[i]))

		if _, err := stmt.ExecContext(ctx, chunk.ID, documentID, chunk.Filename,
			chunk.Position, chunk.StartOffset, chunk.EndOffset, chunk.Text, blob); err != nil {
			return fmt.Errorf("inserting entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Delete removes all entries for the document. Absent ids are a no-op.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting entries: %w", err)
	}
	return nil
}

// Search scans all stored entries and returns the topK nearest by
// cosine similarity, descending, ties broken by chunk position.
func (s *Store) Search(ctx context.Context, query []float32, topK int, filter *driven.SearchFilter) ([]domain.ScoredChunk, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: topK must be >= 1", domain.ErrInvalidInput)
	}
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(query), s.dimensions)
	}

	q := normalise(query)

	sqlQuery := `
		SELECT chunk_id, document_id, filename, position, start_offset, end_offset, content, embedding
		FROM entries
	`
	var args []any
	if filter != nil && len(filter.Filenames) > 0 {
		placeholders := strings.Repeat("?,", len(filter.Filenames))
		sqlQuery += " WHERE filename IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, f := range filter.Filenames {
			args = append(args, f)
		}
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var results []domain.ScoredChunk
	for rows.Next() {
		var chunk domain.Chunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Filename, &chunk.Position,
			&chunk.StartOffset, &chunk.EndOffset, &chunk.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		if len(blob) != s.dimensions*4 {
			return nil, fmt.Errorf("%w: chunk %s has a %d-byte embedding, expected %d",
				domain.ErrIndexCorruption, chunk.ID, len(blob), s.dimensions*4)
		}

		embedding := bytesToFloat32Slice(blob)
		results = append(results, domain.ScoredChunk{
			Chunk: chunk,
			Score: dot(q, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Chunk.Filename != results[j].Chunk.Filename {
			return results[i].Chunk.Filename < results[j].Chunk.Filename
		}
		return results[i].Chunk.Position < results[j].Chunk.Position
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Count returns the total number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// ==================== Document Store ====================

// SaveDocument stores or updates a document record, keyed by filename.
func (s *Store) SaveDocument(ctx context.Context, doc domain.Document) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (filename, id, size_bytes, chunk_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			id = excluded.id,
			size_bytes = excluded.size_bytes,
			chunk_count = excluded.chunk_count,
			updated_at = excluded.updated_at
	`, doc.Filename, doc.ID, doc.SizeBytes, doc.ChunkCount, doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by filename.
func (s *Store) GetDocument(ctx context.Context, filename string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT filename, id, size_bytes, chunk_count, created_at, updated_at
		FROM documents WHERE filename = ?
	`, filename)

	var doc domain.Document
	if err := row.Scan(&doc.Filename, &doc.ID, &doc.SizeBytes, &doc.ChunkCount,
		&doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns all documents ordered by filename.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT filename, id, size_bytes, chunk_count, created_at, updated_at
		FROM documents ORDER BY filename
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.Filename, &doc.ID, &doc.SizeBytes, &doc.ChunkCount,
			&doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document record.
func (s *Store) DeleteDocument(ctx context.Context, filename string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE filename = ?", filename)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helpers ====================

// normalise returns the unit-length copy of v. Zero vectors are
// returned unchanged so they simply never rank above real matches.
func normalise(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		out := make([]float32, len(v))
		copy(out, v)
		return out
	}
	norm := float32(math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// dot computes the dot product of two equal-length vectors.
// Both sides are unit length, so this is cosine similarity.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// float32SliceToBytes converts a float32 slice to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
