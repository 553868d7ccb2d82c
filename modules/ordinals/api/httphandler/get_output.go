package httphandler

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getOutputRequest struct {
	TxHash      string `params:"txid"`
	OutputIndex int32  `params:"vout"`
}

func (r getOutputRequest) Validate() error {
	var errList []error
	if r.TxHash == "" {
		errList = append(errList, errors.New("'txid' is required"))
	}
	if r.OutputIndex < 0 {
		errList = append(errList, errors.New("'vout' must be non-negative"))
	}
	return errors.Join(errList...)
}

type satRangeItem struct {
	Start        uint64 `json:"start"`
	End          uint64 `json:"end"`
	Cardinality  uint64 `json:"cardinality"`
	OutputOffset uint64 `json:"outputOffset"`
}

type getOutputResult struct {
	TxHash        string         `json:"txHash"`
	OutputIndex   uint32         `json:"outputIndex"`
	SatRanges     []satRangeItem `json:"satRanges"`
	CreatedHeight uint64         `json:"createdHeight"`
	SpentHeight   *uint64        `json:"spentHeight"`
	Unspendable   bool           `json:"unspendable"`
	LatestBlock   int64          `json:"latestBlockHeight"`
}

type getOutputResponse = HttpResponse[getOutputResult]

func (h *HttpHandler) GetOutput(ctx *fiber.Ctx) (err error) {
	var req getOutputRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errs.NewPublicError("invalid output location")
	}
	if err := req.Validate(); err != nil {
		return errs.WithPublicMessage(err, "invalid output location")
	}

	txHash, err := chainhash.NewHashFromStr(req.TxHash)
	if err != nil {
		return errs.WithPublicMessage(err, "invalid txid")
	}

	output, err := h.usecase.GetOutputSatRanges(ctx.UserContext(), wire.OutPoint{Hash: *txHash, Index: uint32(req.OutputIndex)})
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.NewPublicError("output not found")
		}
		return errors.Wrap(err, "error during GetOutputSatRanges")
	}

	result := &getOutputResult{
		TxHash:      output.OutPoint.Hash.String(),
		OutputIndex: output.OutPoint.Index,
		SatRanges: lo.Map(output.SatRanges, func(satRange *entity.OutPointSatRange, _ int) satRangeItem {
			return satRangeItem{
				Start:        uint64(satRange.Range.Start),
				End:          uint64(satRange.Range.End),
				Cardinality:  satRange.Range.Cardinality(),
				OutputOffset: satRange.OutputOffset,
			}
		}),
		LatestBlock: output.LatestBlock.Height,
	}
	if len(output.SatRanges) > 0 {
		first := output.SatRanges[0]
		result.CreatedHeight = first.CreatedHeight
		result.SpentHeight = first.SpentHeight
		result.Unspendable = first.Unspendable
	}
	return errors.WithStack(ctx.JSON(getOutputResponse{Result: result}))
}
