package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"isiledger/src/app/http/dto"
	"isiledger/src/app/http/response"
	"isiledger/src/app/middleware"
	"isiledger/src/core/domain"
	"isiledger/src/core/usecase"
	"isiledger/src/infra/codec"
)

// MaxInstructionBytes bounds instruction request bodies.
const MaxInstructionBytes = 1 << 20

// InstructionHandler accepts instructions in either wire form.
type InstructionHandler struct {
	ledger *usecase.LedgerService
	codec  *codec.Codec
}

func NewInstructionHandler(ledger *usecase.LedgerService, c *codec.Codec) *InstructionHandler {
	return &InstructionHandler{ledger: ledger, codec: c}
}

// SubmitJSON executes a JSON instruction.
// POST /v1/instructions
func (h *InstructionHandler) SubmitJSON(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	ins, err := h.codec.DecodeInstructionJSON(body)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	h.submit(c, ins)
}

// SubmitBinary executes a binary-encoded instruction.
// POST /v1/instructions/binary
func (h *InstructionHandler) SubmitBinary(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	ins, err := codec.DecodeInstruction(body)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	h.submit(c, ins)
}

func (h *InstructionHandler) submit(c *gin.Context, ins domain.Instruction) {
	receipt, err := h.ledger.Submit(c.Request.Context(), ins)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.ReceiptResponse{}.FromDomain(receipt.Hash, receipt.Kind, receipt.Destination))
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxInstructionBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, response.Error{Error: response.ErrorDetail{
				Code:      "PAYLOAD_TOO_LARGE",
				Message:   "instruction body exceeds 1 MiB",
				RequestID: middleware.GetRequestID(c),
			}})
			return nil, false
		}
		response.BadRequest(c, "failed to read body", middleware.GetRequestID(c))
		return nil, false
	}
	if len(body) == 0 {
		response.BadRequest(c, "empty body", middleware.GetRequestID(c))
		return nil, false
	}
	return body, true
}
