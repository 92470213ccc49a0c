// Package templates holds the prompt templates for every pipeline stage and
// the stage identifiers used to attribute model exchanges and decode
// failures. Templates are Go text/template sources rendered through
// langchaingo's prompt machinery.
package templates

// Stage identifiers. Each model exchange belongs to exactly one stage.
const (
	StageIntentExtraction      = "intent_extraction"
	StagePlanGeneration        = "plan_generation"
	StageIterativeRefinement   = "iterative_refinement"
	StageSystemPromptSynthesis = "system_prompt_synthesis"
	StageCallSummary           = "call_summary"
)

const intentExtractionTemplate = `
Based on the following user input, generate a JSON object representing the call intent. The JSON object must include the following keys:
- "caller_role": the role of the caller.
- "recipient_role": the role of the recipient.
- "purpose": the purpose of the call.
- "context": additional context for the call.

User input: {{.user_input}}

Generate the JSON object without any extra explanation.
`

const planGenerationTemplate = `
You are an expert call planning agent. Using a reactive approach and chain-of-thought reasoning, analyze the following call intent and generate a detailed JSON plan that outlines possible situations and corresponding actions, along with your reasoning.

Call intent: {{.intent}}

Requirements:
1. Under the key "scenarios", list multiple possible scenarios that might occur during the call, especially scenarios triggered by the recipient's messages.
2. Each scenario must include:
   - "name": a brief unique name for the scenario.
   - "description": a short description of the situation.
   - "chain_of_thought": a detailed explanation of your reasoning for this scenario, including what the recipient might say or do next and what responses you can logically take.
   - "possible_actions": a list of actions. Each action must be an object of the form { "action": "what the caller says or does in response", "next": "name of the next scenario or 'END'" }.
3. The plan must be reactive and capture follow-up steps based on how the conversation evolves.
4. Set "next" to "END" once the purpose is achieved.
5. Do not make any autonomous decisions (such as booking, canceling or changing an appointment, or agreeing to an alternative plan). At any such decision point the action must be along the lines of "I will check and call you back later", with "next" set to "END".
6. Output only the JSON without any extra text or explanation.

Please generate the JSON plan.
`

const iterativeRefinementTemplate = `
Here is the current call plan and the user intent:
{{.plan_json}}

User intent: {{.intent}}

Refine and elaborate this plan to be more detailed and actionable using chain-of-thought reasoning.
For each scenario:
- Decide whether to keep or remove it; drop scenarios that are irrelevant to the intent.
- Add follow-up scenarios for any action whose "next" target is not defined in the plan.
- Do not make any autonomous decisions (such as booking, canceling or changing an appointment, or agreeing to an alternative plan). At any such decision point the action must be along the lines of "I will check and call you back later", with "next" set to "END".
Ensure the refined plan keeps the same JSON structure.
Return the refined plan as JSON without any extra text.
`

const systemPromptSynthesisTemplate = `
You are an AI tasked with creating a system prompt for another conversational AI agent. The call plan below contains the user's intent and detailed scenarios for handling the call:
{{.plan_json}}

User intent: {{.intent}}

Follow these instructions:
1. Create a system prompt that clearly explains the situation, the role of the conversational agent (the caller), the recipient, and the purpose of the conversation.
2. Summarize the plan and give the agent clear instructions on how to react to the recipient's messages.
3. Specify the end condition of the conversation: either the purpose is achieved, or a decision point is reached that the intent does not cover.
4. Do not make any autonomous decisions (such as booking, canceling or changing an appointment, or agreeing to an alternative plan). At any such decision point the agent must say something along the lines of "I will check and call you back later" and end the conversation.
5. Provide the first message the agent should say when the conversation starts. A simple greeting is enough.

Output format must be JSON:
{
    "system_prompt": "System prompt",
    "first_message": "First message"
}
`

const callSummaryTemplate = `
Based on the following call record, generate a JSON summary with the following keys:
1. "recipient": the party that received the call.
2. "purpose": the purpose of the call.
3. "result": "success" if the purpose was achieved, or "failure" otherwise.
4. "failureReason": if the call failed, the reason extracted from the call record (otherwise empty or null).
5. "nextSteps": what the user should do next (for example, call back or make a decision).
6. "additionalDetails": any additional information the user should be aware of.

Call record: {{.call_log}}

Output only the JSON summary without any extra text or explanation.
`

var builtin = map[string]string{
	StageIntentExtraction:      intentExtractionTemplate,
	StagePlanGeneration:        planGenerationTemplate,
	StageIterativeRefinement:   iterativeRefinementTemplate,
	StageSystemPromptSynthesis: systemPromptSynthesisTemplate,
	StageCallSummary:           callSummaryTemplate,
}
