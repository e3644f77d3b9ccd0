package webhook

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/ranobe-bot/internal/domain/model"
)

var (
	ErrMalformedInteraction   = errors.New("malformed interaction payload")
	ErrUnsupportedInteraction = errors.New("unsupported interaction type")
)

// Decode converts a verified request body into a domain interaction.
func Decode(body []byte) (model.Interaction, error) {
	var raw discordgo.Interaction
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInteraction, err)
	}
	env := model.Envelope{ID: raw.ID, Token: raw.Token}

	switch raw.Type {
	case discordgo.InteractionPing:
		return model.Ping{Envelope: env}, nil

	case discordgo.InteractionApplicationCommand:
		data, ok := raw.Data.(discordgo.ApplicationCommandInteractionData)
		if !ok {
			return nil, fmt.Errorf("%w: command without data", ErrMalformedInteraction)
		}
		cmd, err := model.NewCommand(env, data.Name, commandQuery(data.Options))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInteraction, err)
		}
		return cmd, nil

	case discordgo.InteractionMessageComponent:
		data, ok := raw.Data.(discordgo.MessageComponentInteractionData)
		if !ok {
			return nil, fmt.Errorf("%w: component without data", ErrMalformedInteraction)
		}
		if data.ComponentType != discordgo.SelectMenuComponent {
			return nil, fmt.Errorf("%w: component type %d", ErrUnsupportedInteraction, data.ComponentType)
		}
		if data.CustomID != model.SelectBookCustomID {
			return nil, fmt.Errorf("%w: component %q", ErrUnsupportedInteraction, data.CustomID)
		}
		sel, err := model.NewComponentSelect(env, data.CustomID, data.Values)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInteraction, err)
		}
		return sel, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedInteraction, raw.Type)
	}
}

// commandQuery returns the first option's value as text.
func commandQuery(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	if len(opts) == 0 || opts[0] == nil {
		return ""
	}
	switch v := opts[0].Value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
