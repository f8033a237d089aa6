package commands

import (
	"context"
	"strings"

	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
)

// AddMembersCommand registers a batch of voting identities. Membership only
// ever grows; the eligibility decision itself is made off-chain.
type AddMembersCommand struct {
	ActorID   string
	MemberIDs []string
}

func (uc *RegistryUseCase) AddMembers(ctx context.Context, cmd AddMembersCommand) error {
	logger := uc.logger()
	if err := uc.requireAdmin(cmd.ActorID); err != nil {
		return err
	}
	if len(cmd.MemberIDs) == 0 {
		return domainerrors.ErrInvalidMemberArray
	}
	members := make([]string, 0, len(cmd.MemberIDs))
	for _, id := range cmd.MemberIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return domainerrors.ErrBlankIdentity
		}
		members = append(members, id)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now()
	if err := uc.Members.AddMembers(ctx, members, now); err != nil {
		return err
	}
	if err := uc.appendRegistryEvent(ctx, "members.added", 0, now, map[string]any{
		"added_by":     strings.TrimSpace(cmd.ActorID),
		"member_count": len(members),
		"members":      members,
	}); err != nil {
		return err
	}

	logger.Info("members added",
		"event", "registry_members_added",
		"module", "governance/voting-registry",
		"layer", "application",
		"member_count", len(members),
	)
	return nil
}
