package handlers

import (
	"net/http"
	"strconv"
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

// maxProfileImageBytes caps multipart image uploads at 5 MiB.
const maxProfileImageBytes = 5 << 20

type CaregiverHandler struct {
	Svc    *application.CaregiverService
	Logger *logrus.Logger
}

func NewCaregiverHandler(svc *application.CaregiverService, logger *logrus.Logger) *CaregiverHandler {
	return &CaregiverHandler{Svc: svc, Logger: logger}
}

type createCaregiverRequest struct {
	Name                       string         `json:"name" binding:"required,max=100"`
	ResidentRegistrationNumber string         `json:"residentRegistrationNumber" binding:"required,rrn"`
	Contact                    string         `json:"contact" binding:"required,max=30"`
	Gender                     string         `json:"gender" binding:"required,oneof=MALE FEMALE"`
	Address                    addressPayload `json:"address" binding:"required"`
	Rating                     float32        `json:"rating" binding:"gte=0,lte=5"`
	ExperienceYears            int            `json:"experienceYears" binding:"gte=0,lte=80"`
	Specialization             string         `json:"specialization" binding:"max=100"`
	CaregiverSignificant       string         `json:"caregiverSignificant" binding:"max=2000"`
}

type updateCaregiverRequest struct {
	Contact              string         `json:"contact" binding:"required,max=30"`
	Address              addressPayload `json:"address" binding:"required"`
	Rating               float32        `json:"rating" binding:"gte=0,lte=5"`
	ExperienceYears      int            `json:"experienceYears" binding:"gte=0,lte=80"`
	Specialization       string         `json:"specialization" binding:"max=100"`
	CaregiverSignificant string         `json:"caregiverSignificant" binding:"max=2000"`
}

func caregiverResponse(cg *entity.Caregiver) gin.H {
	age, _ := rrn.Age(cg.ResidentRegistrationNumber, time.Now())
	return gin.H{
		"id":                         cg.ID,
		"memberId":                   cg.MemberID,
		"name":                       cg.Name,
		"residentRegistrationNumber": rrn.Mask(cg.ResidentRegistrationNumber),
		"age":                        age,
		"contact":                    cg.Contact,
		"gender":                     cg.Gender,
		"address":                    cg.Address,
		"rating":                     cg.Rating,
		"experienceYears":            cg.ExperienceYears,
		"specialization":             cg.Specialization,
		"caregiverSignificant":       cg.CaregiverSignificant,
		"profileImageUrl":            cg.ProfileImageURL,
		"isInMatchList":              cg.IsInMatchList,
		"createdAt":                  cg.CreatedAt,
		"updatedAt":                  cg.UpdatedAt,
	}
}

func (h *CaregiverHandler) Create(c *gin.Context) {
	var req createCaregiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, validation.ToDetails(err))
		return
	}

	cg, err := h.Svc.CreateProfile(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey), application.CreateCaregiverInput{
		Name:                       req.Name,
		ResidentRegistrationNumber: req.ResidentRegistrationNumber,
		Contact:                    req.Contact,
		Gender:                     entity.Gender(req.Gender),
		Address:                    req.Address.toEntity(),
		Rating:                     req.Rating,
		ExperienceYears:            req.ExperienceYears,
		Specialization:             req.Specialization,
		CaregiverSignificant:       req.CaregiverSignificant,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, caregiverResponse(cg), "caregiver profile created", nil)
}

func (h *CaregiverHandler) Get(c *gin.Context) {
	cg, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, caregiverResponse(cg), "caregiver profile", nil)
}

func (h *CaregiverHandler) Update(c *gin.Context) {
	var req updateCaregiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, validation.ToDetails(err))
		return
	}

	err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey), application.UpdateCaregiverInput{
		Contact:              req.Contact,
		Address:              req.Address.toEntity(),
		Rating:               req.Rating,
		ExperienceYears:      req.ExperienceYears,
		Specialization:       req.Specialization,
		CaregiverSignificant: req.CaregiverSignificant,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CaregiverHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteProfile(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CaregiverHandler) RegisterMatch(c *gin.Context) {
	if err := h.Svc.RegisterToMatchList(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CaregiverHandler) UnregisterMatch(c *gin.Context) {
	if err := h.Svc.UnregisterFromMatchList(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage stores a multipart profile image and returns its public URL.
func (h *CaregiverHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing image file", gin.H{"code": application.CodeValidation})
		return
	}
	if file.Size > maxProfileImageBytes {
		response.Error(c, http.StatusBadRequest, "image too large", gin.H{"code": application.CodeValidation, "max_bytes": maxProfileImageBytes})
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable image file", gin.H{"code": application.CodeValidation})
		return
	}
	defer src.Close()

	url, err := h.Svc.UploadProfileImage(c.Request.Context(), c.GetString(middleware.CtxMemberIDKey), src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profileImageUrl": url}, "profile image uploaded", nil)
}

// Search serves the caregiver match-list search shared by all
// authenticated members.
func (h *CaregiverHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "caregiver search results", map[string]any{"count": len(hits)})
}
