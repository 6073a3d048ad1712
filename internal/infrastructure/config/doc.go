// Package config handles loading and validating the virtual drive configuration.
//
// This package manages:
//   - Loading configuration from YAML or JSON files
//   - Locating the deployed or packaged configuration file
//   - Overriding with environment variables
//   - Validation of required fields and of the measure table
//
// Security Considerations:
//   - Broker passwords and InfluxDB tokens should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load(config.Locate("/var/user", "Virtual_Drive_Demo"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.MQTT.Broker.Host)
package config
