package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

// InsertArticleBundle persists an article, its citations and its tags as one
// transaction. Tags are get-or-create and attachment is idempotent. Any
// failure rolls the whole bundle back, so the database never holds an
// orphaned article or a partially tagged one.
func (s *Store) InsertArticleBundle(article *model.Article, citations []model.Citation, tagNames []string) error {
	if article.Id == "" {
		article.Id = uuid.New().String()
	}
	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Citations", "Tags").Create(article).Error; err != nil {
			return errors.Wrap(err, "fail to insert article")
		}

		for i := range citations {
			citations[i].Id = uuid.New().String()
			citations[i].ArticleID = article.Id
			citations[i].CreatedAt = now
		}
		if len(citations) > 0 {
			if err := tx.Create(&citations).Error; err != nil {
				return errors.Wrap(err, "fail to insert citations")
			}
		}

		for _, name := range tagNames {
			tag := model.Tag{Id: uuid.New().String(), Name: name, CreatedAt: now}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&tag).Error; err != nil {
				return errors.Wrapf(err, "fail to get-or-create tag %s", name)
			}
			// On conflict the generated id was discarded, re-read the winner.
			if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
				return errors.Wrapf(err, "fail to load tag %s", name)
			}
			if err := tx.Exec(
				"INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				article.Id, tag.Id,
			).Error; err != nil {
				return errors.Wrapf(err, "fail to attach tag %s", name)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "article bundle not persisted")
	}
	return nil
}

// GetArticleBySlug returns nil when no article carries the slug.
func (s *Store) GetArticleBySlug(slug string) (*model.Article, error) {
	var article model.Article
	res := s.DB.Where("slug = ?", slug).First(&article)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &article, nil
}

// GetArticleWithRelations loads one article with citations and tags for the
// read surface.
func (s *Store) GetArticleWithRelations(slug string) (*model.Article, error) {
	var article model.Article
	res := s.DB.Preload("Citations").Preload("Tags").Where("slug = ?", slug).First(&article)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &article, nil
}

// GetRecentArticles returns articles published within the trailing window,
// newest first. This feeds the cross-run near-duplicate guard.
func (s *Store) GetRecentArticles(daysBack int) ([]model.Article, error) {
	var articles []model.Article
	cutoff := time.Now().AddDate(0, 0, -daysBack)
	res := s.DB.Where("published_at >= ?", cutoff).Order("published_at DESC").Find(&articles)
	return articles, res.Error
}

// ListArticles pages through published articles, newest first.
func (s *Store) ListArticles(limit, offset int) ([]model.Article, error) {
	var articles []model.Article
	res := s.DB.Where("published_at <= ?", time.Now()).
		Order("published_at DESC").Limit(limit).Offset(offset).Find(&articles)
	return articles, res.Error
}

// CountArticles returns the total number of articles.
func (s *Store) CountArticles() (int64, error) {
	var count int64
	res := s.DB.Model(&model.Article{}).Count(&count)
	return count, res.Error
}

// ListArticlesByTag pages through published articles carrying the tag.
func (s *Store) ListArticlesByTag(tagName string, limit, offset int) ([]model.Article, error) {
	var articles []model.Article
	res := s.DB.
		Joins("JOIN article_tags ON article_tags.article_id = articles.id").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("tags.name = ? AND articles.published_at <= ?", tagName, time.Now()).
		Order("articles.published_at DESC").Limit(limit).Offset(offset).
		Find(&articles)
	return articles, res.Error
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	res := s.DB.Order("name").Find(&tags)
	return tags, res.Error
}

// GetCitationsByArticleId returns the article's citations in insertion order.
func (s *Store) GetCitationsByArticleId(articleId string) ([]model.Citation, error) {
	var citations []model.Citation
	res := s.DB.Where("article_id = ?", articleId).Order("created_at").Find(&citations)
	return citations, res.Error
}

// ListArticlesNeedingReview feeds the batch quality reviewer.
func (s *Store) ListArticlesNeedingReview(limit int) ([]model.Article, error) {
	var articles []model.Article
	res := s.DB.Where("review_status = ?", model.ReviewStatusNeedsReview).
		Order("created_at DESC").Limit(limit).Find(&articles)
	return articles, res.Error
}

// UpdateReviewStatus is the only mutation an article sees after creation.
func (s *Store) UpdateReviewStatus(articleId, status string) error {
	return s.DB.Model(&model.Article{}).Where("id = ?", articleId).
		Update("review_status", status).Error
}
