package scoring

// Channel is one of the four Module 8 perception channels.
type Channel string

const (
	ChannelVisual      Channel = "visual"
	ChannelAuditory    Channel = "auditory"
	ChannelKinesthetic Channel = "kinesthetic"
	ChannelDigital     Channel = "digital"
)

// Channels lists the perception channels in output order.
var Channels = []Channel{ChannelVisual, ChannelAuditory, ChannelKinesthetic, ChannelDigital}

const (
	PerceptionBlocks  = 5
	PerceptionOptions = 4
)

// perceptionKey is indexed by [block-1][option-1].
var perceptionKey = [PerceptionBlocks][PerceptionOptions]Channel{
	{ChannelVisual, ChannelAuditory, ChannelKinesthetic, ChannelDigital},
	{ChannelAuditory, ChannelKinesthetic, ChannelDigital, ChannelVisual},
	{ChannelKinesthetic, ChannelDigital, ChannelVisual, ChannelAuditory},
	{ChannelDigital, ChannelVisual, ChannelAuditory, ChannelKinesthetic},
	{ChannelVisual, ChannelKinesthetic, ChannelAuditory, ChannelDigital},
}

// PerceptionScores holds the summed ranks per channel.
type PerceptionScores struct {
	Visual      int `json:"visual"`
	Auditory    int `json:"auditory"`
	Kinesthetic int `json:"kinesthetic"`
	Digital     int `json:"digital"`
}

func (PerceptionScores) Module() Module { return ModulePerception }

func (s PerceptionScores) Fields() map[string]any {
	return map[string]any{
		string(ChannelVisual):      s.Visual,
		string(ChannelAuditory):    s.Auditory,
		string(ChannelKinesthetic): s.Kinesthetic,
		string(ChannelDigital):     s.Digital,
	}
}

// Get returns the sum of one channel.
func (s PerceptionScores) Get(c Channel) int {
	switch c {
	case ChannelVisual:
		return s.Visual
	case ChannelAuditory:
		return s.Auditory
	case ChannelKinesthetic:
		return s.Kinesthetic
	case ChannelDigital:
		return s.Digital
	default:
		return 0
	}
}

func (s *PerceptionScores) add(c Channel, n int) {
	switch c {
	case ChannelVisual:
		s.Visual += n
	case ChannelAuditory:
		s.Auditory += n
	case ChannelKinesthetic:
		s.Kinesthetic += n
	case ChannelDigital:
		s.Digital += n
	}
}

// ScorePerception adds each option's 1..4 rank to the channel it stands for.
// Only compound q<N>_opt<K> keys are scored.
func ScorePerception(answers RawAnswers) PerceptionScores {
	var out PerceptionScores
	for key, value := range answers {
		qk, ok := parseQuestionKey(key)
		if !ok || qk.Option == 0 {
			continue
		}
		if qk.Number > PerceptionBlocks || qk.Option > PerceptionOptions {
			continue
		}
		rank, ok := intInRange(value, 1, PerceptionOptions)
		if !ok {
			continue
		}
		out.add(perceptionKey[qk.Number-1][qk.Option-1], rank)
	}
	return out
}
