package kafka

// ArticleImageEvent 图片变更事件信封。Images 用指针区分「字段缺失」与「空列表」：
// 缺失视为畸形事件丢弃，空列表是显式的全量删除。
type ArticleImageEvent struct {
	ReferenceID string        `json:"referenceId"`
	Images      *[]EventImage `json:"images"`
}

// EventImage 事件中的单张图片，sequence 可空
type EventImage struct {
	ImageID  string `json:"imageId"`
	ImageURL string `json:"imageUrl"`
	Sequence *int   `json:"sequence"`
}

type OutcomeKind int

const (
	OutcomeApplied OutcomeKind = iota
	OutcomeSkipped
	OutcomeDropped
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeApplied:
		return "applied"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDropped:
		return "dropped"
	}
	return "unknown"
}

// Outcome 单个事件的处理结论，便于观测与测试，替代只靠日志副作用
type Outcome struct {
	Kind    OutcomeKind
	Reason  string
	Applied int // 实际落库的图片数
}

func applied(n int) Outcome {
	return Outcome{Kind: OutcomeApplied, Applied: n}
}

func skipped(reason string) Outcome {
	return Outcome{Kind: OutcomeSkipped, Reason: reason}
}

func dropped(reason string) Outcome {
	return Outcome{Kind: OutcomeDropped, Reason: reason}
}
