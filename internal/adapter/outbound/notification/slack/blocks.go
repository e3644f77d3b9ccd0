package slack

import (
	"fmt"

	slackapi "github.com/slack-go/slack"

	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
)

// BuildDroppedFollowUpBlocks constructs Block Kit blocks describing a
// follow-up that never reached the user.
func BuildDroppedFollowUpBlocks(e outbound.DroppedFollowUp) []slackapi.Block {
	header := slackapi.NewSectionBlock(
		slackapi.NewTextBlockObject(slackapi.MarkdownType,
			":x: *Follow-up dropped*", false, false),
		nil, nil,
	)

	fields := []*slackapi.TextBlockObject{
		slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("*Interaction*\n`%s`", e.InteractionID), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("*Flow*\n%s", e.Kind), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("*Mode*\n%s", e.Mode), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("*Task*\n`%s`", e.TaskID), false, false),
	}
	fieldBlock := slackapi.NewSectionBlock(nil, fields, nil)

	errBlock := slackapi.NewContextBlock("",
		slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("```%s```", e.Err), false, false),
	)

	return []slackapi.Block{header, fieldBlock, errBlock}
}
