package device_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mangadesk/internal/repositories"
	"mangadesk/internal/services"
)

var Module = fx.Provide(
	providePolicyConfig, provideDeviceRepo, provideDeviceService)

func providePolicyConfig() services.PolicyConfig {
	return services.DefaultPolicyConfig()
}

func provideDeviceRepo(db *gorm.DB) repositories.DeviceRepository {
	return repositories.NewDeviceRepository(db)
}

func provideDeviceService(accountRepo repositories.AccountRepository, deviceRepo repositories.DeviceRepository, cfg services.PolicyConfig) services.DevicePolicyServiceInterface {
	return services.NewDevicePolicyService(accountRepo, deviceRepo, cfg)
}
