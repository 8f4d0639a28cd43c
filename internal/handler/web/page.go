package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"

	"KabuCard/internal/domain/models"
	"KabuCard/internal/usecase"
	xhttp "KabuCard/pkg/http"
	xlogger "KabuCard/pkg/logger"
	"KabuCard/pkg/util"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageView is what the template sees: either a page or an error banner.
type pageView struct {
	Title  string
	Icon   string
	Page   *models.StockPage
	Error  string
	Detail string
}

// PageHandler renders the stock page as HTML.
type PageHandler struct {
	logger *xlogger.Logger
	page   *usecase.StockPage
	tmpl   *template.Template
	title  string
	icon   string
}

func NewPageHandler(logger *xlogger.Logger, page *usecase.StockPage, title, icon string) *PageHandler {
	tmpl := template.Must(template.New("page").
		Funcs(template.FuncMap{"stamp": util.FormatJST}).
		ParseFS(templateFS, "templates/*.html"))
	return &PageHandler{logger: logger, page: page, tmpl: tmpl, title: title, icon: icon}
}

func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
}

func (h *PageHandler) Index(c echo.Context) error {
	view := pageView{Title: h.title, Icon: h.icon}
	status := http.StatusOK

	res, err := h.page.Build(c.Request().Context())
	if err != nil {
		h.logger.Error("stock page render error",
			xlogger.String("symbol", h.page.Symbol()),
			xlogger.Error(err),
		)
		status = http.StatusInternalServerError
		view.Error = usecase.MsgUnexpected
		var appErr *xhttp.AppError
		if errors.As(err, &appErr) {
			status = appErr.Status
			view.Error = appErr.Message
			if appErr.Status == http.StatusBadGateway && appErr.Err != nil {
				view.Detail = errorDetail(appErr.Err)
			}
		}
	} else {
		view.Page = res
	}

	var buf bytes.Buffer
	if err := h.render(&buf, view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.HTMLBlob(status, buf.Bytes())
}

// errorDetail describes err without the request URL, which carries the session crumb.
func errorDetail(err error) string {
	msg := err.Error()
	var ue *url.Error
	if errors.As(err, &ue) {
		msg = strings.Replace(msg, ue.Error(), ue.Op+": "+ue.Err.Error(), 1)
	}
	return msg
}

func (h *PageHandler) render(w io.Writer, view pageView) error {
	return h.tmpl.ExecuteTemplate(w, "page.html", view)
}
