package shopfront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vcp/catsync/internal/model"
)

// defaultBatchSize 单次请求的变体 id 上限（控制请求/响应体大小）
const defaultBatchSize = 100

// FetchError 上游拉取失败（类型化结果，调用方据此跳过单个店铺）
type FetchError struct {
	ShopID     string
	StatusCode int
	Err        error
	Retryable  bool
}

// Error 实现 error 接口
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("shopfront fetch failed for shop %s: status %d", e.ShopID, e.StatusCode)
	}
	return fmt.Sprintf("shopfront fetch failed for shop %s: %v", e.ShopID, e.Err)
}

// Unwrap 暴露底层错误
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client 上游商城选项元数据客户端
// 重试策略归传输层协作者所有，这里不做重试
type Client struct {
	baseURL   string
	batchSize int
	http      *http.Client
}

// NewClient 创建客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		batchSize: defaultBatchSize,
		http:      &http.Client{Timeout: timeout},
	}
}

// optionsRequest 批量查询请求体
type optionsRequest struct {
	ShopID     string   `json:"shop_id"`
	VariantIDs []string `json:"variant_ids"`
}

// optionsResponse 批量查询响应体
type optionsResponse struct {
	Variants []model.VariantOptions `json:"variants"`
}

// VariantOptions 批量拉取变体选项元数据（自动分块）
// 任一分块失败则整体失败，不返回部分结果，避免误导性的残缺建议
func (c *Client) VariantOptions(ctx context.Context, shopID, accessToken string, variantIDs []string) ([]model.VariantOptions, error) {
	var out []model.VariantOptions
	for start := 0; start < len(variantIDs); start += c.batchSize {
		end := start + c.batchSize
		if end > len(variantIDs) {
			end = len(variantIDs)
		}

		chunk, err := c.fetchChunk(ctx, shopID, accessToken, variantIDs[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// fetchChunk 拉取单个分块
func (c *Client) fetchChunk(ctx context.Context, shopID, accessToken string, variantIDs []string) ([]model.VariantOptions, error) {
	body, err := json.Marshal(&optionsRequest{ShopID: shopID, VariantIDs: variantIDs})
	if err != nil {
		return nil, &FetchError{ShopID: shopID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/variants/options", bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{ShopID: shopID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Access-Token", accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		// 网络层失败视作可重试
		return nil, &FetchError{ShopID: shopID, Err: err, Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{
			ShopID:     shopID,
			StatusCode: resp.StatusCode,
			Retryable:  resp.StatusCode >= 500,
		}
	}

	var decoded optionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &FetchError{ShopID: shopID, Err: fmt.Errorf("malformed response: %w", err)}
	}

	return decoded.Variants, nil
}
