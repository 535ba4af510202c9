package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	// StatsLLMCallsStarted is base for counter metric for model calls started
	StatsLLMCallsStarted = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_calls_started",
		Help:         "stats_llm_calls_started provides total model calls started",
		RequiredTags: []string{"node", "model"},
	}

	StatsLLMCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_calls_failed",
		Help:         "stats_llm_calls_failed provides total model calls failed",
		RequiredTags: []string{"node", "model"},
	}

	StatsLLMCallsRetried = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_calls_retried",
		Help:         "stats_llm_calls_retried provides total failed attempts that were retried",
		RequiredTags: []string{"node"},
	}

	StatsLLMInputTokens = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_input_tokens",
		Help:         "stats_llm_input_tokens provides total input tokens sent to LLM",
		RequiredTags: []string{"node", "model"},
	}

	StatsLLMOutputTokens = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_output_tokens",
		Help:         "stats_llm_output_tokens provides total output tokens received from LLM",
		RequiredTags: []string{"node", "model"},
	}

	StatsLLMTotalTokens = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_total_tokens",
		Help:         "stats_llm_total_tokens provides total tokens sent and received from LLM",
		RequiredTags: []string{"node", "model"},
	}

	StatsLLMEstimatedTokens = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_estimated_tokens",
		Help:         "stats_llm_estimated_tokens provides total tokens estimated when the provider did not report usage",
		RequiredTags: []string{"node", "model"},
	}

	StatsNodeSupplyData = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_node_supply_data",
		Help:         "stats_node_supply_data provides total SupplyData calls",
		RequiredTags: []string{"node"},
	}
)

// Perf
var (
	PerfLLMCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_llm_call",
		Help:         "perf_llm_call provides duration of model call",
		RequiredTags: []string{"model"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfLLMCall,
	&StatsLLMCallsFailed,
	&StatsLLMCallsRetried,
	&StatsLLMCallsStarted,
	&StatsLLMEstimatedTokens,
	&StatsLLMInputTokens,
	&StatsLLMOutputTokens,
	&StatsLLMTotalTokens,
	&StatsNodeSupplyData,
}
