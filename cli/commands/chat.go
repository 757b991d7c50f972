package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/albert-go/albert"
	"github.com/petal-labs/albert-go/core"
)

func (a *App) newChatCommand() *cobra.Command {
	var (
		prompt string
		system string
		model  string
		agents bool
		extras = newExtrasValue()
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a chat completion request",
		Long: `Send a chat completion request to the platform.

Examples:
  albert chat --model albert-large --prompt "Bonjour"
  albert chat --prompt "Résume ce texte" --system "Tu es concis." --set temperature=0.2
  albert chat --prompt "Quelle heure est-il ?" --agents --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modelID, err := a.chatModel(model)
			if err != nil {
				return err
			}

			messages := make([]core.Message, 0, 2)
			if system != "" {
				messages = append(messages, core.SystemMessage(system))
			}
			messages = append(messages, core.UserMessage(prompt))

			return a.withClient(func(c *albert.Client) error {
				call := c.ChatCompletions
				if agents {
					call = c.AgentsCompletions
				}
				res, err := call(cmd.Context(), messages, modelID, extras.Extras())
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.printResult(res)
				}

				var completion core.ChatCompletion
				if err := res.Decode(&completion); err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, completion.Content())
				if a.verbose && completion.Usage != nil {
					a.logger.Debug("token usage",
						"prompt_tokens", completion.Usage.PromptTokens,
						"completion_tokens", completion.Usage.CompletionTokens,
						"total_tokens", completion.Usage.TotalTokens)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "user message (required)")
	cmd.Flags().StringVar(&system, "system", "", "system message")
	cmd.Flags().StringVar(&model, "model", "", "model ID (default is the profile chat_model)")
	cmd.Flags().BoolVar(&agents, "agents", false, "use agent completions with platform tools")
	cmd.Flags().Var(extras, "set", "extra body field, repeatable (e.g. --set temperature=0.2)")
	_ = cmd.MarkFlagRequired("prompt")

	cmd.AddCommand(&cobra.Command{
		Use:   "tools",
		Short: "List the tools available to agent completions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *albert.Client) error {
				res, err := c.AgentTools(cmd.Context())
				if err != nil {
					return err
				}
				return a.printResult(res)
			})
		},
	})

	return cmd
}
