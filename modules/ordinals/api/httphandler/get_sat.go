package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"
	"github.com/gofiber/fiber/v2"
)

type getSatRequest struct {
	Number uint64 `params:"number"`
}

func (r getSatRequest) Validate() error {
	if r.Number >= ordinals.Supply {
		return errors.Errorf("'number' must be less than %d", uint64(ordinals.Supply))
	}
	return nil
}

type satLocation struct {
	TxHash      string `json:"txHash"`
	OutputIndex uint32 `json:"outputIndex"`
	Offset      uint64 `json:"offset"`
}

type getSatResult struct {
	Number uint64 `json:"number"`
	Rarity string `json:"rarity"`
	Height uint64 `json:"height"`
	Epoch  uint64 `json:"epoch"`
	Cycle  uint64 `json:"cycle"`
	Third  uint64 `json:"third"`
	// Location is null for sats not currently in any indexed unspent output
	Location    *satLocation `json:"location"`
	Unspendable bool         `json:"unspendable"`
}

type getSatResponse = HttpResponse[getSatResult]

func (h *HttpHandler) GetSat(ctx *fiber.Ctx) (err error) {
	var req getSatRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errs.NewPublicError("invalid sat number")
	}
	if err := req.Validate(); err != nil {
		return errs.WithPublicMessage(err, "invalid sat number")
	}

	sat, err := ordinals.NewSat(req.Number)
	if err != nil {
		return errs.WithPublicMessage(err, "invalid sat number")
	}

	satInfo, err := h.usecase.GetSatInfo(ctx.UserContext(), sat)
	if err != nil {
		return errors.Wrap(err, "error during GetSatInfo")
	}

	result := &getSatResult{
		Number:      uint64(satInfo.Sat),
		Rarity:      satInfo.Rarity.String(),
		Height:      satInfo.Height,
		Epoch:       satInfo.Epoch,
		Cycle:       satInfo.Cycle,
		Third:       satInfo.Third,
		Unspendable: satInfo.Unspendable,
	}
	if satInfo.Location != nil {
		result.Location = &satLocation{
			TxHash:      satInfo.Location.OutPoint.Hash.String(),
			OutputIndex: satInfo.Location.OutPoint.Index,
			Offset:      satInfo.Location.Offset,
		}
	}

	resp := getSatResponse{
		Result: result,
	}
	return errors.WithStack(ctx.JSON(resp))
}
