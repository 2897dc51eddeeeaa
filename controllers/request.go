package controllers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/hub"
	"github.com/yeremiapane/restaurant-reservations/pipeline"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// envelope is the {"data": {...}} request body every write endpoint takes.
type envelope[T any] struct {
	Data *T `json:"data"`
}

func bindData[T any](c *gin.Context) (*T, error) {
	var body envelope[T]
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, utils.BadRequest("Data Missing!")
		}
		return nil, utils.BadRequest("Invalid request body!")
	}
	if body.Data == nil {
		return nil, utils.BadRequest("Data Missing!")
	}
	return body.Data, nil
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// run executes chain and hands any failure to the error middleware.
func run[T any](c *gin.Context, chain pipeline.Chain[T], x *T) {
	if err := chain.Run(x); err != nil {
		_ = c.Error(err)
	}
}

func publisherOrNoop(p hub.Publisher) hub.Publisher {
	if p == nil {
		return hub.Fanout{}
	}
	return p
}
