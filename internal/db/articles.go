package db

import (
	"context"
	"fmt"

	"github.com/bmartin/banktracker/internal/types"
)

// ListLinks returns every stored article link, for the dedupe snapshot read
// once at the start of an aggregation run.
func (db *DB) ListLinks(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT link FROM articles`)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	var links []string
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read links: %w", err)
	}

	return links, nil
}

// InsertArticle stores an article. A duplicate link is a silent no-op, never
// an error; the return value reports whether a row was actually inserted.
func (db *DB) InsertArticle(ctx context.Context, a types.Article) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO articles (
			title, link, publish_date, source, bank_code, summary,
			ai_relevance_score, ai_relevance_reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (link) DO NOTHING`,
		a.Title, a.Link, a.PublishDate, a.Source, string(a.BankCode), a.Summary,
		a.AIRelevanceScore, a.AIRelevanceReason,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert article %s: %w", a.Link, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListArticles returns stored articles ordered by publish date descending.
// A non-positive limit returns everything.
func (db *DB) ListArticles(ctx context.Context, limit int) ([]types.Article, error) {
	query := `SELECT id, title, link, publish_date, source, bank_code, summary,
			ai_relevance_score, ai_relevance_reason, created_at
		FROM articles ORDER BY publish_date DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []types.Article
	for rows.Next() {
		var a types.Article
		var bankCode string
		if err := rows.Scan(&a.ID, &a.Title, &a.Link, &a.PublishDate, &a.Source,
			&bankCode, &a.Summary, &a.AIRelevanceScore, &a.AIRelevanceReason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		a.BankCode = types.BankCode(bankCode)
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}

	return articles, nil
}
