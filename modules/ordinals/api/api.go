package api

import (
	"github.com/gaze-network/ordinals-indexer/common"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/api/httphandler"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/usecase"
)

func NewHTTPHandler(network common.Network, usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(network, usecase)
}
