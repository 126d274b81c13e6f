package api

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"

	"hiregate/internal/api/middleware"
	"hiregate/internal/export"
	"hiregate/internal/schema"
	"hiregate/internal/sheetstore"
)

const logoSettingKey = "logo_base64"
const maxLogoBytes = 2 << 20

// SettingsHandler 维护 system_settings 表，目前只有公司 Logo 一项。
type SettingsHandler struct {
	store     sheetstore.Store
	logger    *slog.Logger
	clamdAddr string
}

// NewSettingsHandler 构造 SettingsHandler。
func NewSettingsHandler(store sheetstore.Store, logger *slog.Logger, clamdAddr string) *SettingsHandler {
	return &SettingsHandler{
		store:     store,
		logger:    logger,
		clamdAddr: clamdAddr,
	}
}

// GetLogo 返回当前 Logo 的 data URI；未设置时返回空字符串。
func (h *SettingsHandler) GetLogo(c *gin.Context) {
	row, err := h.store.FindRow(c.Request.Context(), &schema.Settings, logoSettingKey)
	if err != nil {
		if sheetstore.IsNotFound(err) {
			c.JSON(http.StatusOK, gin.H{"logo": ""})
			return
		}
		middleware.LoggerFromContext(c).Error("load logo failed", slog.Any("error", err))
		Internal(c, "failed to load logo")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo": export.NormalizeLogo(row.Get("value"))})
}

// UploadLogo 接收 PNG 档，扫描后以 data URI 形式写入 system_settings。
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > maxLogoBytes {
		BadRequest(c, "logo file too large")
		return
	}

	logger := middleware.LoggerFromContext(c)

	clamdClient := clamd.NewClamd(h.clamdAddr)

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}

	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(fileReader, abortChan)
	fileReader.Close()
	if err != nil {
		logger.Error("scan logo", slog.String("error", err.Error()))
		Internal(c, "failed to scan file")
		return
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			BadRequest(c, "malicious file detected")
			return
		}
	}

	fileReader, err = file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return
	}
	defer fileReader.Close()

	data, err := io.ReadAll(fileReader)
	if err != nil {
		Internal(c, "failed to read file")
		return
	}

	logo := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	ctx := c.Request.Context()
	row, err := h.store.FindRow(ctx, &schema.Settings, logoSettingKey)
	switch {
	case err == nil:
		if err := h.store.WriteFields(ctx, &schema.Settings, row.Index, map[string]string{
			"value": logo,
		}); err != nil {
			logger.Error("write logo failed", slog.Any("error", err))
			Internal(c, "failed to save logo")
			return
		}
	case sheetstore.IsNotFound(err):
		values, err := schema.Settings.NewRow(map[string]string{
			"key":   logoSettingKey,
			"value": logo,
		})
		if err != nil {
			Internal(c, "failed to save logo")
			return
		}
		if err := h.store.AppendRow(ctx, &schema.Settings, values); err != nil {
			logger.Error("append logo failed", slog.Any("error", err))
			Internal(c, "failed to save logo")
			return
		}
	default:
		logger.Error("load logo failed", slog.Any("error", err))
		Internal(c, "failed to save logo")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"logo": logo})
}
