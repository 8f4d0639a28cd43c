package api

import (
	models "KabuCard/internal/domain/models"
	"KabuCard/internal/usecase"
	xhttp "KabuCard/pkg/http"
	xlogger "KabuCard/pkg/logger"
	"KabuCard/pkg/numfmt"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// StockEchoHandler serves the stock page as JSON and the formatter as a small API.
type StockEchoHandler struct {
	logger *xlogger.Logger
	page   *usecase.StockPage
}

func NewStockEchoHandler(logger *xlogger.Logger, page *usecase.StockPage) *StockEchoHandler {
	return &StockEchoHandler{logger: logger, page: page}
}

func (h *StockEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock", h.Stock)
	g.GET("/format/market-cap", h.FormatMarketCap)
}

func (h *StockEchoHandler) Stock(c echo.Context) error {
	res, err := h.page.Build(c.Request().Context())
	if err != nil {
		h.logger.Error("stock page usecase error",
			xlogger.String("symbol", h.page.Symbol()),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, res)
}

func (h *StockEchoHandler) FormatMarketCap(c echo.Context) error {
	req := &models.MarketCapFormatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	d, err := decimal.NewFromString(req.Value)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("value must be a number").WithError(err))
	}
	return xhttp.SuccessResponse(c, &models.MarketCapFormatResponse{
		Value:     req.Value,
		Formatted: numfmt.FormatValue(d),
	})
}
