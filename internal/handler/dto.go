package handler

import "tickernews/internal/model"

type NewsResponse struct {
	Articles []model.Article `json:"articles"`
}
