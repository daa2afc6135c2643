package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ── 证件识别客户端 ──────────────────────────────────────────
//
// 职责：调用外部识别服务，从证件/银行凭证图片中提取结构化字段。
// 提取结果由向导层写入对应字段组并打上已验证标记；识别服务不可用
// 时整体功能降级为纯手工录入，不阻断入职流程。
// ─────────────────────────────────────────────────────────────

const (
	maxResponseSize = 2 * 1024 * 1024 // 2MB
	defaultTimeout  = 30 * time.Second
)

// 支持的证件类型
const (
	DocTypeAadhaar      = "aadhaar"
	DocTypePAN          = "pan"
	DocTypeBankPassbook = "bank_passbook"
	DocTypeCheque       = "cancelled_cheque"
)

var (
	ErrUnsupportedDocType = errors.New("不支持的证件类型")
	ErrLowConfidence      = errors.New("识别置信度过低")
	ErrServiceUnavailable = errors.New("识别服务不可用")
)

// 低于该置信度的提取结果不予采用
const minConfidence = 0.60

// Extraction 一次识别的结构化结果
type Extraction struct {
	DocType    string            `json:"doc_type"`
	Fields     map[string]string `json:"fields"` // 字段名 → 提取值
	Confidence float64           `json:"confidence"`
}

// extractRequest 识别服务请求体
type extractRequest struct {
	DocType  string `json:"doc_type"`
	ImageURL string `json:"image_url"`
}

// extractResponse 识别服务响应体
type extractResponse struct {
	Fields     map[string]string `json:"fields"`
	Confidence float64           `json:"confidence"`
	Error      string            `json:"error,omitempty"`
}

// Client 识别服务 HTTP 客户端
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient 创建识别客户端
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Extract 识别指定类型证件，返回提取字段
func (c *Client) Extract(ctx context.Context, docType, imageURL string) (*Extraction, error) {
	switch docType {
	case DocTypeAadhaar, DocTypePAN, DocTypeBankPassbook, DocTypeCheque:
	default:
		return nil, ErrUnsupportedDocType
	}

	body, err := json.Marshal(extractRequest{DocType: docType, ImageURL: imageURL})
	if err != nil {
		return nil, fmt.Errorf("构造识别请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构造识别请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("识别服务请求失败", zap.String("doc_type", docType), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// 限制响应体大小，防止异常响应导致 OOM
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("读取识别响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("识别服务返回异常状态",
			zap.String("doc_type", docType),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: HTTP %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var out extractResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("解析识别响应失败: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("识别失败: %s", out.Error)
	}
	if out.Confidence < minConfidence {
		return nil, ErrLowConfidence
	}

	return &Extraction{
		DocType:    docType,
		Fields:     out.Fields,
		Confidence: out.Confidence,
	}, nil
}
