package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/metrics"
	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/utils"
)

const (
	opRecommendations = "recommendations"
	opPatterns        = "patterns"
	opConnections     = "connections"
)

// InferenceOptions 推理客户端参数
type InferenceOptions struct {
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerOpen     time.Duration
}

// InferenceClient 对生成式模型的单次调用：超时、熔断、JSON解析和结果校验，不做重试
type InferenceClient struct {
	gen     Generator
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[string]
	log     *slog.Logger
}

// NewInferenceClient 创建推理客户端
func NewInferenceClient(gen Generator, opts InferenceOptions) *InferenceClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerOpen <= 0 {
		opts.BreakerOpen = 30 * time.Second
	}

	log := logger.Component("inference")
	failures := opts.BreakerFailures

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Timeout:     opts.BreakerOpen,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// 调用方主动取消不算后端故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &InferenceClient{
		gen:     gen,
		timeout: opts.Timeout,
		breaker: breaker,
		log:     log,
	}
}

// Infer 推荐请求，失败时返回 *InferenceError，不会返回部分结果
func (c *InferenceClient) Infer(ctx context.Context, prompt Prompt) (*models.RecommendationReport, error) {
	raw, err := c.generate(ctx, opRecommendations, prompt)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Recommendations   *[]rawConnection `json:"recommendations"`
		OverarchingThemes *[]string        `json:"overarchingThemes"`
		SuggestedTags     *[]string        `json:"suggestedTags"`
		ContentSummary    *string          `json:"contentSummary"`
	}
	if err := c.decode(opRecommendations, raw, &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.Recommendations == nil:
		return nil, c.fail(opRecommendations, InferenceSchema, errors.New("missing recommendations"))
	case resp.OverarchingThemes == nil:
		return nil, c.fail(opRecommendations, InferenceSchema, errors.New("missing overarchingThemes"))
	case resp.SuggestedTags == nil:
		return nil, c.fail(opRecommendations, InferenceSchema, errors.New("missing suggestedTags"))
	case resp.ContentSummary == nil || strings.TrimSpace(*resp.ContentSummary) == "":
		return nil, c.fail(opRecommendations, InferenceSchema, errors.New("missing contentSummary"))
	}

	connections, err := c.connections(opRecommendations, *resp.Recommendations, prompt)
	if err != nil {
		return nil, err
	}

	return &models.RecommendationReport{
		Recommendations:   connections,
		OverarchingThemes: utils.DeduplicateSlice(*resp.OverarchingThemes),
		SuggestedTags:     utils.DeduplicateSlice(*resp.SuggestedTags),
		ContentSummary:    strings.TrimSpace(*resp.ContentSummary),
	}, nil
}

// InferPatterns 模式分析请求，聚类中不在输入集合里的id会被丢弃
func (c *InferenceClient) InferPatterns(ctx context.Context, prompt Prompt) (*models.PatternAnalysisReport, error) {
	raw, err := c.generate(ctx, opPatterns, prompt)
	if err != nil {
		return nil, err
	}

	var resp struct {
		CommonThemes    *[]string `json:"commonThemes"`
		ContentClusters *[]struct {
			Theme      *string   `json:"theme"`
			ContentIDs *[]string `json:"contentIds"`
		} `json:"contentClusters"`
		Insights *string `json:"insights"`
	}
	if err := c.decode(opPatterns, raw, &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.CommonThemes == nil:
		return nil, c.fail(opPatterns, InferenceSchema, errors.New("missing commonThemes"))
	case resp.ContentClusters == nil:
		return nil, c.fail(opPatterns, InferenceSchema, errors.New("missing contentClusters"))
	case resp.Insights == nil || strings.TrimSpace(*resp.Insights) == "":
		return nil, c.fail(opPatterns, InferenceSchema, errors.New("missing insights"))
	}

	known := prompt.ids()
	clusters := make([]models.ContentCluster, 0, len(*resp.ContentClusters))
	for i, cl := range *resp.ContentClusters {
		if cl.Theme == nil || strings.TrimSpace(*cl.Theme) == "" || cl.ContentIDs == nil {
			return nil, c.fail(opPatterns, InferenceSchema, fmt.Errorf("cluster %d: missing theme or contentIds", i))
		}

		ids := make([]string, 0, len(*cl.ContentIDs))
		for _, id := range utils.DeduplicateSlice(*cl.ContentIDs) {
			if _, ok := known[id]; !ok {
				c.log.Warn("Dropping unknown id from cluster", "theme", *cl.Theme, "content_id", id)
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}
		clusters = append(clusters, models.ContentCluster{Theme: strings.TrimSpace(*cl.Theme), ContentIDs: ids})
	}

	return &models.PatternAnalysisReport{
		CommonThemes:    utils.DeduplicateSlice(*resp.CommonThemes),
		ContentClusters: clusters,
		Insights:        strings.TrimSpace(*resp.Insights),
	}, nil
}

// InferConnections 连接建议请求
func (c *InferenceClient) InferConnections(ctx context.Context, prompt Prompt) (*models.ConnectionsReport, error) {
	raw, err := c.generate(ctx, opConnections, prompt)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Connections *[]rawConnection `json:"connections"`
	}
	if err := c.decode(opConnections, raw, &resp); err != nil {
		return nil, err
	}
	if resp.Connections == nil {
		return nil, c.fail(opConnections, InferenceSchema, errors.New("missing connections"))
	}

	connections, err := c.connections(opConnections, *resp.Connections, prompt)
	if err != nil {
		return nil, err
	}
	return &models.ConnectionsReport{Connections: connections}, nil
}

// generate 一次往返：带超时，经过熔断器，记录耗时
func (c *InferenceClient) generate(ctx context.Context, op string, prompt Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.Debug("Calling generative backend", "operation", op, "items", len(prompt.Items), "prompt_tokens", utils.CalculateTokens(prompt.Text))

	start := time.Now()
	raw, err := c.breaker.Execute(func() (string, error) {
		return c.gen.GenerateJSON(ctx, prompt)
	})
	metrics.InferenceDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return "", c.fail(op, InferenceUnavailable, err)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
			return "", c.fail(op, InferenceTimeout, err)
		default:
			return "", c.fail(op, InferenceRequest, err)
		}
	}
	return raw, nil
}

// decode 清理markdown包裹后解析JSON
func (c *InferenceClient) decode(op, raw string, dst any) error {
	cleaned := utils.CleanJSONResponse(raw)
	if cleaned == "" {
		return c.fail(op, InferenceParse, errors.New("empty response"))
	}
	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		c.log.Error("Failed to parse model response", "operation", op, "error", err, "preview", utils.TruncateRunes(cleaned, 500))
		return c.fail(op, InferenceParse, err)
	}
	return nil
}

// rawConnection 模型输出的原始连接，指针字段用于检测缺失
type rawConnection struct {
	ContentID          *string   `json:"contentId"`
	ContentTitle       *string   `json:"contentTitle"`
	ContentType        *string   `json:"contentType"`
	ConnectionStrength *float64  `json:"connectionStrength"`
	ConnectionReason   *string   `json:"connectionReason"`
	SharedThemes       *[]string `json:"sharedThemes"`
}

// connections 校验每个连接，丢弃候选池之外的id，按强度降序并截断
func (c *InferenceClient) connections(op string, raws []rawConnection, prompt Prompt) ([]models.ThematicConnection, error) {
	known := prompt.ids()
	seen := make(map[string]int)
	out := make([]models.ThematicConnection, 0, len(raws))

	for i, r := range raws {
		conn, err := validateConnection(r)
		if err != nil {
			return nil, c.fail(op, InferenceSchema, fmt.Errorf("connection %d: %w", i, err))
		}

		item, ok := known[conn.ContentID]
		if !ok {
			c.log.Warn("Dropping connection outside candidate pool", "operation", op, "content_id", conn.ContentID)
			metrics.DroppedConnections.Inc()
			continue
		}
		// 回显字段以存储中的内容为准
		conn.ContentTitle = item.Title
		conn.ContentType = string(item.ContentType)

		if idx, dup := seen[conn.ContentID]; dup {
			if conn.ConnectionStrength > out[idx].ConnectionStrength {
				out[idx] = conn
			}
			continue
		}
		seen[conn.ContentID] = len(out)
		out = append(out, conn)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConnectionStrength > out[j].ConnectionStrength
	})
	if len(out) > models.MaxRecommendations {
		out = out[:models.MaxRecommendations]
	}
	return out, nil
}

func validateConnection(r rawConnection) (models.ThematicConnection, error) {
	switch {
	case r.ContentID == nil || strings.TrimSpace(*r.ContentID) == "":
		return models.ThematicConnection{}, errors.New("missing contentId")
	case r.ConnectionStrength == nil:
		return models.ThematicConnection{}, errors.New("missing connectionStrength")
	case r.ConnectionReason == nil:
		return models.ThematicConnection{}, errors.New("missing connectionReason")
	case r.SharedThemes == nil:
		return models.ThematicConnection{}, errors.New("missing sharedThemes")
	}

	strength := *r.ConnectionStrength
	if math.IsNaN(strength) || strength < 0 || strength > 100 {
		return models.ThematicConnection{}, fmt.Errorf("connectionStrength %v out of range [0, 100]", strength)
	}

	conn := models.ThematicConnection{
		ContentID:          strings.TrimSpace(*r.ContentID),
		ConnectionStrength: int(math.Round(strength)),
		ConnectionReason:   strings.TrimSpace(*r.ConnectionReason),
		SharedThemes:       utils.DeduplicateSlice(*r.SharedThemes),
	}
	if r.ContentTitle != nil {
		conn.ContentTitle = *r.ContentTitle
	}
	if r.ContentType != nil {
		conn.ContentType = *r.ContentType
	}
	return conn, nil
}

// fail 记录指标并构造 InferenceError
func (c *InferenceClient) fail(op string, kind InferenceKind, err error) error {
	metrics.InferenceErrors.WithLabelValues(op, string(kind)).Inc()
	c.log.Error("Inference failed", "operation", op, "kind", string(kind), "error", err)
	return &InferenceError{Op: op, Kind: kind, Err: err}
}
