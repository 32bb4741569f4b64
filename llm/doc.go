// Package llm drives a chat-completions model through tool calling rounds.
//
// Runtime.Complete sends the conversation and the function definitions of a
// tool.Set, executes every tool call the model requests and feeds the results
// back until the model answers in plain text or the iteration budget runs out.
// The OpenAI provider speaks the chat-completions wire format, AzureOpenAI
// builds a deployment scoped endpoint for it.
package llm
