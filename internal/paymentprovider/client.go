// Package paymentprovider реализует HTTP-клиент платёжного шлюза Chapa:
// инициализацию hosted-платежа и независимую проверку транзакции по её
// ссылке. Шлюз рассматривается как внешний сервис с фиксированным
// JSON-контрактом.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client — клиент API Chapa. Секретный ключ передаётся в конструктор явно
// и используется как Bearer-токен в каждом запросе.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Chapa. apiURL — базовый адрес API,
// например https://api.chapa.co/v1.
func NewClient(secretKey, apiURL string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// InitializeTransaction отправляет запрос на создание hosted-платежа.
// Сетевая ошибка или нечитаемый ответ возвращаются как ошибка; бизнес-отказ
// шлюза (Status != "success") отдаётся вызывающему через тело ответа.
func (c *Client) InitializeTransaction(ctx context.Context, reqParams InitializeRequest) (*InitializeResponse, error) {
	const op = "paymentprovider.InitializeTransaction"

	req, err := c.newRequest(ctx, http.MethodPost, "/transaction/initialize", reqParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var initResp InitializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&initResp); err != nil {
		return nil, fmt.Errorf("%s: unexpected status %s: %w", op, resp.Status, err)
	}
	return &initResp, nil
}

// VerifyTransaction проверяет транзакцию по её ссылке.
func (c *Client) VerifyTransaction(ctx context.Context, txRef string) (*VerifyResponse, error) {
	const op = "paymentprovider.VerifyTransaction"

	req, err := c.newRequest(ctx, http.MethodGet, "/transaction/verify/"+txRef, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var verifyResp VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verifyResp); err != nil {
		return nil, fmt.Errorf("%s: unexpected status %s: %w", op, resp.Status, err)
	}
	return &verifyResp, nil
}
