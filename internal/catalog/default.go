package catalog

// Version is the version of the built-in catalog. Bump it when appending steps.
const Version = 1

var defaultSteps = []Step{
	{
		ID:          "welcome",
		Title:       "Welcome to ST.AIRS",
		Description: "This is your strategic planning platform, where big ideas become actionable steps. Let's walk through how to climb your strategy, one stair at a time.",
		Icon:        "🏗️",
	},
	{
		ID:          "company_brief",
		Title:       "Company Brief",
		Description: "Start by describing your company: industry, size, goals. This context helps ST.AIRS tailor everything to your specific situation.",
		Icon:        "🏢",
		Selector:    "[data-tutorial='strategy-landing']",
		FeatureKey:  "strategy_landing",
	},
	{
		ID:          "strategy_selection",
		Title:       "Strategy Selection",
		Description: "Choose your strategy type and framework. Whether it's OKR, BSC, or a custom approach, this sets the foundation for your strategic staircase.",
		Icon:        "🎯",
		Selector:    "[data-tutorial='strategy-wizard']",
		FeatureKey:  "strategy_wizard",
	},
	{
		ID:          "ai_questionnaire",
		Title:       "AI Questionnaire",
		Description: "Answer tailored questions that make your strategy accurate. The AI adapts follow-up questions based on your responses to build a complete picture.",
		Icon:        "💬",
		Selector:    "[data-tutorial='questionnaire']",
		FeatureKey:  "questionnaire",
	},
	{
		ID:          "the_staircase",
		Title:       "The Staircase",
		Description: "Your strategy visualized as steps, from vision at the top to tasks at the bottom. Each stair represents a level of your plan, connected and trackable.",
		Icon:        "🪜",
		Selector:    "[data-tutorial='nav-staircase']",
		FeatureKey:  "staircase",
	},
	{
		ID:          "explain_enhance",
		Title:       "Explain & Enhance",
		Description: "Select any stair element and let AI explain its strategic importance or suggest enhancements. Understand the 'why' behind every step.",
		Icon:        "✨",
		Selector:    "[data-tutorial='staircase-actions']",
		FeatureKey:  "explain_enhance",
	},
	{
		ID:          "execution_room",
		Title:       "Execution Room",
		Description: "Turn strategy into action. The Execution Room generates tasks, solutions, and lets you chat about implementation details for any stair element.",
		Icon:        "⚡",
		Selector:    "[data-tutorial='execution-room']",
		FeatureKey:  "execution_room",
	},
	{
		ID:          "how_far",
		Title:       "How Far Can I Do This",
		Description: "The feedback loop for realistic planning. Assess what's achievable given your constraints and get AI-powered recommendations for adjustments.",
		Icon:        "📏",
		Selector:    "[data-tutorial='how-far']",
		FeatureKey:  "how_far",
	},
	{
		ID:          "custom_action_plan",
		Title:       "Customized Action Plan",
		Description: "Your tailored plan based on real constraints. After the feedback loop, get a customized set of actions that fits your actual capacity and resources.",
		Icon:        "📐",
		Selector:    "[data-tutorial='custom-plan']",
		FeatureKey:  "custom_action_plan",
	},
	{
		ID:          "action_plans_tab",
		Title:       "Action Plans Tab",
		Description: "All your action plans in one place, organized by stair element. Track recommended vs. customized plans, monitor progress, and export anytime.",
		Icon:        "📋",
		Selector:    "[data-tutorial='nav-actionplans']",
		FeatureKey:  "action_plans",
	},
	{
		ID:          "export",
		Title:       "Export",
		Description: "Download your strategy and action plans as formatted PDFs. Share with stakeholders, print for meetings, or archive for reference.",
		Icon:        "📄",
		Selector:    "[data-tutorial='export-btn']",
		FeatureKey:  "export",
	},
	{
		ID:          "ai_chat",
		Title:       "AI Chat Advisor",
		Description: "Your strategic advisor is always available. Ask questions, brainstorm ideas, or get analysis, with full conversation history saved.",
		Icon:        "🤖",
		Selector:    "[data-tutorial='nav-ai']",
		FeatureKey:  "ai_chat",
	},
	{
		ID:          "notes",
		Title:       "Notes",
		Description: "Save important AI responses, jot down ideas, or pin key insights. Your notes are searchable, exportable, and always at hand.",
		Icon:        "📝",
		Selector:    "[data-tutorial='nav-notes']",
		FeatureKey:  "notes",
	},
}

// Default returns the built-in product tour.
func Default() *Catalog {
	return New(Version, defaultSteps)
}
