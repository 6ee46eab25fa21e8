package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const msgSettingExists = "settings with this name already exists."

type SettingPatch struct {
	Name  *string
	Value *string
}

type Settings struct {
	settings port.SettingRepository
	policy   *access.Policy
}

func NewSettings(settings port.SettingRepository, policies access.Policies) *Settings {
	return &Settings{
		settings: settings,
		policy:   policies.Settings,
	}
}

func (s *Settings) List(ctx context.Context, page domain.Page) ([]domain.Setting, int, error) {
	if _, err := authorize(ctx, s.policy, access.ActionList); err != nil {
		return nil, 0, err
	}

	settings, count, err := s.settings.ListSettings(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("settings.ListSettings: %w", err)
	}

	return settings, count, nil
}

func (s *Settings) Get(ctx context.Context, name string) (domain.Setting, error) {
	return s.get(ctx, access.ActionRetrieve, name)
}

func (s *Settings) get(ctx context.Context, action access.Action, name string) (domain.Setting, error) {
	if _, err := authorize(ctx, s.policy, action); err != nil {
		return domain.Setting{}, err
	}

	setting, err := s.settings.GetSetting(ctx, name)
	if err != nil {
		return domain.Setting{}, fmt.Errorf("settings.GetSetting: %w", err)
	}

	return setting, nil
}

func (s *Settings) Create(ctx context.Context, setting domain.Setting) (domain.Setting, error) {
	if _, err := authorize(ctx, s.policy, access.ActionCreate); err != nil {
		return domain.Setting{}, err
	}

	setting.Name = strings.TrimSpace(setting.Name)
	if err := validateSetting(setting); err != nil {
		return domain.Setting{}, err
	}

	if err := s.settings.InsertSetting(ctx, setting); err != nil {
		return domain.Setting{}, fmt.Errorf("settings.InsertSetting: %w", uniqueOn(err, "name", msgSettingExists))
	}

	return setting, nil
}

func (s *Settings) Update(ctx context.Context, name string, setting domain.Setting) (domain.Setting, error) {
	return s.update(ctx, access.ActionUpdate, name, SettingPatch{Name: &setting.Name, Value: &setting.Value})
}

func (s *Settings) PartialUpdate(ctx context.Context, name string, patch SettingPatch) (domain.Setting, error) {
	return s.update(ctx, access.ActionPartialUpdate, name, patch)
}

// update may rename the setting.
func (s *Settings) update(ctx context.Context, action access.Action, name string, patch SettingPatch) (domain.Setting, error) {
	setting, err := s.get(ctx, action, name)
	if err != nil {
		return domain.Setting{}, err
	}

	if patch.Name != nil {
		setting.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Value != nil {
		setting.Value = *patch.Value
	}

	if err := validateSetting(setting); err != nil {
		return domain.Setting{}, err
	}

	if err := s.settings.UpdateSetting(ctx, name, setting); err != nil {
		return domain.Setting{}, fmt.Errorf("settings.UpdateSetting: %w", uniqueOn(err, "name", msgSettingExists))
	}

	return setting, nil
}

func (s *Settings) Destroy(ctx context.Context, name string) error {
	if _, err := authorize(ctx, s.policy, access.ActionDestroy); err != nil {
		return err
	}

	if err := s.settings.DeleteSetting(ctx, name); err != nil {
		return fmt.Errorf("settings.DeleteSetting: %w", err)
	}

	return nil
}

func validateSetting(setting domain.Setting) error {
	if setting.Name == "" {
		return domain.NewValidationError("name", msgBlank)
	}

	if len(setting.Name) > maxNameLength {
		return domain.NewValidationError("name", fmt.Sprintf(msgTooLong, maxNameLength))
	}

	return nil
}

func (s *Settings) Authorize(ctx context.Context, action access.Action) error {
	_, err := authorize(ctx, s.policy, action)
	return err
}

func (s *Settings) Check(ctx context.Context, action access.Action, name string) error {
	_, err := s.get(ctx, action, name)
	return err
}
