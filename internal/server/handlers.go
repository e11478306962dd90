package server

import (
	"net/http"

	"github.com/5afe/safe-notification-service/internal/device"
	"github.com/5afe/safe-notification-service/pkg/errors"
	"github.com/5afe/safe-notification-service/pkg/signing"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	PushToken string            `json:"push_token" binding:"required"`
	Signature signing.Signature `json:"signature"`
}

type registerBatchRequest struct {
	PushToken   string              `json:"push_token" binding:"required"`
	BuildNumber int                 `json:"build_number"`
	VersionName string              `json:"version_name" binding:"required"`
	Client      string              `json:"client" binding:"required"`
	Bundle      string              `json:"bundle" binding:"required"`
	Signatures  []signing.Signature `json:"signatures" binding:"required"`
}

type temporaryAuthorizationRequest struct {
	ExpirationDate string            `json:"expiration_date" binding:"required"`
	Signature      signing.Signature `json:"signature"`
}

type pairingRequest struct {
	TemporaryAuthorization temporaryAuthorizationRequest `json:"temporary_authorization"`
	Signature              signing.Signature             `json:"signature"`
}

type deletePairingRequest struct {
	Device    string            `json:"device" binding:"required"`
	Signature signing.Signature `json:"signature"`
}

type notificationRequest struct {
	Devices   []string          `json:"devices" binding:"required"`
	Message   string            `json:"message" binding:"required"`
	Signature signing.Signature `json:"signature"`
}

type simpleNotificationRequest struct {
	Devices []string `json:"devices" binding:"required"`
	Message string   `json:"message" binding:"required"`
}

// bind decodes the JSON body into req, reporting failures as a 400.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, errors.InvalidArg("malformed request body").WithDetail("body", err.Error()))
		return false
	}
	return true
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) about(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Safe Push Notification Service",
		"version":     s.config.Server.Version,
		"api_version": "v1",
		"settings": gin.H{
			"hash_prefix":                s.config.Signing.HashPrefix,
			"messaging_provider":         s.config.Messaging.Provider,
			"notification_max_retries":   s.config.Notification.MaxRetries,
			"notification_retry_delay":   s.config.Notification.RetryDelaySeconds,
			"require_registered_devices": s.config.Pairing.RequireRegisteredDevices,
		},
	})
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}
	dto, err := s.uc.Register(c.Request.Context(), device.RegisterCommand{
		PushToken: req.PushToken,
		Signature: req.Signature,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"owner": dto.Owner, "push_token": dto.PushToken})
}

func (s *Server) registerBatch(c *gin.Context) {
	var req registerBatchRequest
	if !bind(c, &req) {
		return
	}
	dtos, err := s.uc.RegisterBatch(c.Request.Context(), device.RegisterBatchCommand{
		PushToken:   req.PushToken,
		BuildNumber: req.BuildNumber,
		VersionName: req.VersionName,
		Client:      req.Client,
		Bundle:      req.Bundle,
		Signatures:  req.Signatures,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos)
}

func (s *Server) createPairing(c *gin.Context) {
	var req pairingRequest
	if !bind(c, &req) {
		return
	}
	dto, err := s.uc.CreatePairing(c.Request.Context(), device.PairingCommand{
		TemporaryAuthorization: device.TemporaryAuthorization{
			ExpirationDate: req.TemporaryAuthorization.ExpirationDate,
			Signature:      req.TemporaryAuthorization.Signature,
		},
		Signature: req.Signature,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (s *Server) deletePairing(c *gin.Context) {
	var req deletePairingRequest
	if !bind(c, &req) {
		return
	}
	err := s.uc.DeletePairing(c.Request.Context(), device.DeletePairingCommand{
		Device:    req.Device,
		Signature: req.Signature,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) notify(c *gin.Context) {
	var req notificationRequest
	if !bind(c, &req) {
		return
	}
	ok, err := s.uc.Notify(c.Request.Context(), device.NotificationCommand{
		Devices:   req.Devices,
		Message:   req.Message,
		Signature: req.Signature,
	})
	s.notified(c, ok, err)
}

func (s *Server) notifyTrusted(c *gin.Context) {
	var req simpleNotificationRequest
	if !bind(c, &req) {
		return
	}
	ok, err := s.uc.NotifyTrusted(c.Request.Context(), device.SimpleNotificationCommand{
		Devices: req.Devices,
		Message: req.Message,
	})
	s.notified(c, ok, err)
}

func (s *Server) notified(c *gin.Context, ok bool, err error) {
	switch {
	case err != nil:
		abortWithError(c, err)
	case !ok:
		abortWithError(c, errors.ErrNoEligibleDevice)
	default:
		c.Status(http.StatusNoContent)
	}
}
