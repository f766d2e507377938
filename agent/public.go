package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/date"
	"github.com/fundlens/fundlens/mfapi"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand Indian mutual funds: how a
			scheme performed, what a SIP or SWP in it would have done, and how
			consistent its returns are. Identify which scheme the user means
			before computing anything.

			Devise a plan of questions to ask each expert and come up with the
			best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher builds the expert that grounds answers in the open
// web: fund house news, category definitions, regulatory changes.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher on Indian mutual funds,
		well aware of fund houses, scheme categories and market news.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert on Indian mutual funds and markets. You can
			search and find anything related to fund houses, AMCs, scheme
			categories, SEBI rules and market news. You leverage Google Search
			to ground your assertions.
				`}}},
		},
	}
}

// NewAnalyst builds the expert that runs the return calculators
// against real NAV histories.
func NewAnalyst(funds *mfapi.Client) *Expert {
	lib := analystTools(funds)

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. Armed with every scheme's full NAV
		history, the Analyst can look up schemes, fetch the latest NAV, and
		compute trailing and SIP returns for any scheme code.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a quantitative analyst for Indian mutual funds. Use the
				available tools to look up schemes by name, fetch their latest
				NAV, and compute trailing or SIP returns. Always resolve a
				scheme name to its numeric code with search_schemes before
				calling the calculators. Report figures exactly as the tools
				return them.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func toolError(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID: id, Name: name,
		Response: map[string]any{"error": err.Error()},
	}
}

func toolResult(id, name string, v any) *genai.FunctionResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return toolError(id, name, err)
	}
	return &genai.FunctionResponse{
		ID: id, Name: name,
		Response: map[string]any{"output": string(b)},
	}
}

func intArg(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		return int(v), nil
	case string:
		var n int
		_, err := fmt.Sscanf(v, "%d", &n)
		return n, err
	}
	return 0, fmt.Errorf("missing or invalid %q", key)
}

func analystTools(funds *mfapi.Client) []*Func {
	searchSchemes := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "search_schemes",
			Description: "Search the mutual fund universe by scheme name. Returns up to 10 matches with their numeric scheme codes.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {Type: genai.TypeString, Description: "Part of the scheme name."},
				},
				Required: []string{"query"},
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			query, _ := args["query"].(string)
			all, err := funds.ActiveSchemes(ctx)
			if err != nil {
				return toolError(id, "search_schemes", err)
			}
			var matches []mfapi.SchemeRef
			for _, s := range all {
				if strings.Contains(strings.ToLower(s.SchemeName), strings.ToLower(query)) {
					matches = append(matches, s)
					if len(matches) == 10 {
						break
					}
				}
			}
			return toolResult(id, "search_schemes", matches)
		},
	}

	latestNav := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "latest_nav",
			Description: "Fetch the latest published NAV for a scheme code.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"scheme_code": {Type: genai.TypeInteger, Description: "Numeric scheme code."},
				},
				Required: []string{"scheme_code"},
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			code, err := intArg(args, "scheme_code")
			if err != nil {
				return toolError(id, "latest_nav", err)
			}
			point, err := funds.LatestNav(ctx, code)
			if err != nil {
				return toolError(id, "latest_nav", err)
			}
			return toolResult(id, "latest_nav", point)
		},
	}

	trailingReturns := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "trailing_returns",
			Description: "Compute a scheme's trailing simple and annualized return over a named period (1m, 3m, 6m, 1y).",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"scheme_code": {Type: genai.TypeInteger, Description: "Numeric scheme code."},
					"period":      {Type: genai.TypeString, Description: "One of 1m, 3m, 6m, 1y."},
				},
				Required: []string{"scheme_code", "period"},
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			code, err := intArg(args, "scheme_code")
			if err != nil {
				return toolError(id, "trailing_returns", err)
			}
			period, err := fundlens.ParsePeriod(fmt.Sprint(args["period"]))
			if err != nil {
				return toolError(id, "trailing_returns", err)
			}
			series, err := funds.NavSeries(ctx, code)
			if err != nil {
				return toolError(id, "trailing_returns", err)
			}
			res, err := fundlens.ReturnsForPeriod(series, period)
			if err != nil {
				return toolError(id, "trailing_returns", err)
			}
			return toolResult(id, "trailing_returns", res)
		},
	}

	sipReturns := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "sip_returns",
			Description: "Simulate a monthly SIP in a scheme between two dates and report invested amount, current value and annualized return.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"scheme_code": {Type: genai.TypeInteger, Description: "Numeric scheme code."},
					"amount":      {Type: genai.TypeNumber, Description: "Installment amount in rupees."},
					"from":        {Type: genai.TypeString, Description: "Start date, yyyy-mm-dd."},
					"to":          {Type: genai.TypeString, Description: "End date, yyyy-mm-dd."},
				},
				Required: []string{"scheme_code", "amount", "from", "to"},
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			code, err := intArg(args, "scheme_code")
			if err != nil {
				return toolError(id, "sip_returns", err)
			}
			amount, _ := args["amount"].(float64)
			from, err := date.Parse(fmt.Sprint(args["from"]))
			if err != nil {
				return toolError(id, "sip_returns", err)
			}
			to, err := date.Parse(fmt.Sprint(args["to"]))
			if err != nil {
				return toolError(id, "sip_returns", err)
			}
			series, err := funds.NavSeries(ctx, code)
			if err != nil {
				return toolError(id, "sip_returns", err)
			}
			res, err := fundlens.SIP(series, fundlens.SIPRequest{
				Amount:    amount,
				Frequency: fundlens.Monthly,
				From:      from,
				To:        to,
			})
			if err != nil {
				return toolError(id, "sip_returns", err)
			}
			// The full timeline would blow the context for long SIPs.
			res.Timeline = nil
			return toolResult(id, "sip_returns", res)
		},
	}

	return []*Func{searchSchemes, latestNav, trailingReturns, sipReturns}
}
