// readings-sim plays the role of the external telemetry collaborator: it
// signs in, discovers the account's first device, and posts randomized
// readings to the ingest endpoint on a fixed interval.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

type dashboardResponse struct {
	Device struct {
		ID string `json:"id"`
	} `json:"device"`
}

func main() {
	var (
		apiBase  = flag.String("api", "http://localhost:3000", "dashboard API base URL")
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		deviceID = flag.String("device", "", "device id (defaults to the account's first device)")
		interval = flag.Duration("interval", 3*time.Second, "delay between readings")
		count    = flag.Int("count", 0, "number of readings to send (0 = run forever)")
	)
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if *email == "" || *password == "" {
		logger.Fatal("email and password are required")
	}

	client := &http.Client{Timeout: 10 * time.Second}

	token, err := login(client, *apiBase, *email, *password)
	if err != nil {
		logger.Fatal("login failed", zap.Error(err))
	}

	target := *deviceID
	if target == "" {
		target, err = firstDeviceID(client, *apiBase, token)
		if err != nil {
			logger.Fatal("device discovery failed", zap.Error(err))
		}
	}
	logger.Info("simulating readings", zap.String("device_id", target), zap.Duration("interval", *interval))

	power := 4.8
	for i := 0; *count == 0 || i < *count; i++ {
		power = clamp(power+(rand.Float64()-0.5)*0.6, 0, 6)
		reading := map[string]interface{}{
			"device_id":      target,
			"active_power_p": power,
			"voltage":        240 + (rand.Float64()-0.5)*5,
			"current":        power / 240 * 1000,
			"power_factor":   0.9 + (rand.Float64()-0.5)*0.05,
			"timestamp":      time.Now().UTC(),
		}
		if err := postReading(client, *apiBase, token, reading); err != nil {
			logger.Warn("reading rejected", zap.Error(err))
		} else {
			logger.Info("reading sent", zap.Float64("power_kw", power))
		}
		time.Sleep(*interval)
	}
	logger.Info("simulation done")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func login(client *http.Client, apiBase, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := client.Post(apiBase+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned %d", resp.StatusCode)
	}
	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func firstDeviceID(client *http.Client, apiBase, token string) (string, error) {
	req, _ := http.NewRequest(http.MethodGet, apiBase+"/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dashboard returned %d", resp.StatusCode)
	}
	var out dashboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Device.ID == "" || out.Device.ID == "N/A" {
		return "", fmt.Errorf("account has no devices")
	}
	return out.Device.ID, nil
}

func postReading(client *http.Client, apiBase, token string, reading map[string]interface{}) error {
	body, _ := json.Marshal(reading)
	req, _ := http.NewRequest(http.MethodPost, apiBase+"/api/readings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("ingest returned %d", resp.StatusCode)
	}
	return nil
}
