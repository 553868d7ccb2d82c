package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getBlockRequest struct {
	Height int64 `params:"height"`
}

func (r getBlockRequest) Validate() error {
	if r.Height < 0 {
		return errors.New("'height' must be non-negative")
	}
	return nil
}

type emissionRangeItem struct {
	Idx         int32  `json:"idx"`
	Start       uint64 `json:"start"`
	End         uint64 `json:"end"`
	Cardinality uint64 `json:"cardinality"`
}

type getBlockResult struct {
	Height         int64               `json:"height"`
	Hash           string              `json:"hash"`
	PrevHash       string              `json:"prevHash"`
	CumulativeSats uint64              `json:"cumulativeSats"`
	EmissionRanges []emissionRangeItem `json:"emissionRanges"`
}

type getBlockResponse = HttpResponse[getBlockResult]

func (h *HttpHandler) GetBlock(ctx *fiber.Ctx) (err error) {
	var req getBlockRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errs.NewPublicError("invalid block height")
	}
	if err := req.Validate(); err != nil {
		return errs.WithPublicMessage(err, "invalid block height")
	}

	block, err := h.usecase.GetIndexedBlockByHeight(ctx.UserContext(), req.Height)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.NewPublicError("block not found")
		}
		return errors.Wrap(err, "error during GetIndexedBlockByHeight")
	}

	emissionRanges, err := h.usecase.GetEmissionRangesByHeight(ctx.UserContext(), uint64(req.Height))
	if err != nil && !errors.Is(err, errs.NotFound) {
		return errors.Wrap(err, "error during GetEmissionRangesByHeight")
	}

	resp := getBlockResponse{
		Result: &getBlockResult{
			Height:         block.Height,
			Hash:           block.Hash.String(),
			PrevHash:       block.PrevHash.String(),
			CumulativeSats: block.CumulativeSats,
			EmissionRanges: lo.Map(emissionRanges, func(emissionRange *entity.EmissionRange, _ int) emissionRangeItem {
				return emissionRangeItem{
					Idx:         emissionRange.Idx,
					Start:       uint64(emissionRange.Range.Start),
					End:         uint64(emissionRange.Range.End),
					Cardinality: emissionRange.Range.Cardinality(),
				}
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
