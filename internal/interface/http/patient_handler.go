package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/application"
	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/internal/interface/middleware"
	"github.com/patientpal/patientpal-server/pkg/response"
	"github.com/patientpal/patientpal-server/pkg/rrn"
	"github.com/patientpal/patientpal-server/pkg/validation"
)

type PatientHandler struct {
	Svc    *application.PatientService
	Logger *logrus.Logger
}

func NewPatientHandler(svc *application.PatientService, logger *logrus.Logger) *PatientHandler {
	return &PatientHandler{Svc: svc, Logger: logger}
}

// addressPayload is shared by patient and caregiver requests.
type addressPayload struct {
	Street string `json:"street" binding:"required"`
	Detail string `json:"detail"`
	Zip    string `json:"zip" binding:"required"`
}

func (a addressPayload) toEntity() entity.Address {
	return entity.Address{Street: a.Street, Detail: a.Detail, Zip: a.Zip}
}

type createPatientRequest struct {
	Name                       string         `json:"name" binding:"required,max=100"`
	ResidentRegistrationNumber string         `json:"residentRegistrationNumber" binding:"required,rrn"`
	Address                    addressPayload `json:"address" binding:"required"`
	NokName                    string         `json:"nokName" binding:"max=100"`
	NokContact                 string         `json:"nokContact" binding:"max=30"`
	PatientSignificant         string         `json:"patientSignificant" binding:"max=2000"`
	CareRequirements           string         `json:"careRequirements" binding:"max=2000"`
}

type updatePatientRequest struct {
	Address            addressPayload `json:"address" binding:"required"`
	NokName            string         `json:"nokName" binding:"max=100"`
	NokContact         string         `json:"nokContact" binding:"max=30"`
	PatientSignificant string         `json:"patientSignificant" binding:"max=2000"`
	CareRequirements   string         `json:"careRequirements" binding:"max=2000"`
}

// patientResponse never exposes the raw resident registration number:
// it is masked, and age is derived from it at mapping time.
func patientResponse(p *entity.Patient) gin.H {
	age, _ := rrn.Age(p.ResidentRegistrationNumber, time.Now())
	return gin.H{
		"id":                         p.ID,
		"memberId":                   p.MemberID,
		"name":                       p.Name,
		"residentRegistrationNumber": rrn.Mask(p.ResidentRegistrationNumber),
		"age":                        age,
		"address":                    p.Address,
		"nokName":                    p.NokName,
		"nokContact":                 p.NokContact,
		"patientSignificant":         p.PatientSignificant,
		"careRequirements":           p.CareRequirements,
		"isInMatchList":              p.IsInMatchList,
		"createdAt":                  p.CreatedAt,
		"updatedAt":                  p.UpdatedAt,
	}
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, validation.ToDetails(err))
		return
	}

	p, err := h.Svc.CreateProfile(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey), application.CreatePatientInput{
		Name:                       req.Name,
		ResidentRegistrationNumber: req.ResidentRegistrationNumber,
		Address:                    req.Address.toEntity(),
		NokName:                    req.NokName,
		NokContact:                 req.NokContact,
		PatientSignificant:         req.PatientSignificant,
		CareRequirements:           req.CareRequirements,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, patientResponse(p), "patient profile created", nil)
}

func (h *PatientHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, patientResponse(p), "patient profile", nil)
}

func (h *PatientHandler) Update(c *gin.Context) {
	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, validation.ToDetails(err))
		return
	}

	err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey), application.UpdatePatientInput{
		Address:            req.Address.toEntity(),
		NokName:            req.NokName,
		NokContact:         req.NokContact,
		PatientSignificant: req.PatientSignificant,
		CareRequirements:   req.CareRequirements,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteProfile(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PatientHandler) RegisterMatch(c *gin.Context) {
	if err := h.Svc.RegisterToMatchList(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PatientHandler) UnregisterMatch(c *gin.Context) {
	if err := h.Svc.UnregisterFromMatchList(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
