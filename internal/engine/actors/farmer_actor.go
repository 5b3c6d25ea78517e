// internal/engine/actors/farmer_actor.go
package actors

import (
	stdctx "context"
	"log"
	"regexp"
	"strings"
	"time"

	"kisan-ai/internal/database"
	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Message types for FarmerActor
type (
	RegisterFarmerMsg struct {
		Name              string   `json:"name"`
		Mobile            string   `json:"mobile"`
		Password          string   `json:"password"`
		Village           string   `json:"village"`
		State             string   `json:"state"`
		Crops             []string `json:"crops"`
		PreferredLanguage string   `json:"preferredLanguage"`
	}

	LoginMsg struct {
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}

	GetProfileMsg struct {
		FarmerID uuid.UUID `json:"farmerId"`
	}

	UpdateProfileMsg struct {
		FarmerID          uuid.UUID `json:"farmerId"`
		Village           string    `json:"village"`
		State             string    `json:"state"`
		PreferredLanguage string    `json:"preferredLanguage"`
		Crops             []string  `json:"crops"`
	}
)

// Indian mobile numbers: ten digits, first digit 6-9.
var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// FarmerActor manages farmer accounts and authentication checks.
type FarmerActor struct {
	farmersByID map[uuid.UUID]*models.Farmer
	db          database.DBAdapter
	metrics     *utils.MetricsCollector
}

func NewFarmerActor(db database.DBAdapter, metrics *utils.MetricsCollector) actor.Actor {
	return &FarmerActor{
		farmersByID: make(map[uuid.UUID]*models.Farmer),
		db:          db,
		metrics:     metrics,
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func (a *FarmerActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("FarmerActor started with PID: %v", context.Self())

	case *RegisterFarmerMsg:
		a.handleRegister(context, msg)

	case *LoginMsg:
		a.handleLogin(context, msg)

	case *GetProfileMsg:
		a.handleGetProfile(context, msg)

	case *UpdateProfileMsg:
		a.handleUpdateProfile(context, msg)

	default:
		log.Printf("FarmerActor: Unknown message type %T", msg)
	}
}

func (a *FarmerActor) handleRegister(context actor.Context, msg *RegisterFarmerMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Name) == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Name is required", nil))
		return
	}
	if !mobilePattern.MatchString(msg.Mobile) {
		context.Respond(utils.NewAppError(utils.ErrInvalidMobile, "Mobile number must be a valid 10-digit Indian number", nil))
		return
	}
	if len(msg.Password) < 6 {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Password must be at least 6 characters", nil))
		return
	}

	if _, err := a.db.GetFarmerByMobile(ctx, msg.Mobile); err == nil {
		context.Respond(utils.NewAppError(utils.ErrFarmerExists, "Mobile number is already registered", nil))
		return
	} else if !utils.IsErrorCode(err, utils.ErrFarmerNotFound) {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to check existing account", err))
		return
	}

	hashed, err := hashPassword(msg.Password)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to hash password", err))
		return
	}

	now := time.Now()
	newFarmer := &models.Farmer{
		ID:                uuid.New(),
		Name:              msg.Name,
		Mobile:            msg.Mobile,
		Village:           msg.Village,
		State:             msg.State,
		Crops:             msg.Crops,
		PreferredLanguage: msg.PreferredLanguage,
		HashedPassword:    hashed,
		CreatedAt:         now,
		LastActive:        now,
	}
	if newFarmer.PreferredLanguage == "" {
		newFarmer.PreferredLanguage = "en"
	}
	if newFarmer.Crops == nil {
		newFarmer.Crops = []string{}
	}

	if err := a.db.SaveFarmer(ctx, newFarmer); err != nil {
		// The unique mobile index closes the check-then-save race.
		if utils.IsErrorCode(err, utils.ErrFarmerExists) {
			context.Respond(utils.NewAppError(utils.ErrFarmerExists, "Mobile number is already registered", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save farmer", err))
		return
	}

	a.farmersByID[newFarmer.ID] = newFarmer

	a.metrics.AddOperationLatency("register_farmer", time.Since(startTime))
	context.Respond(newFarmer)
}

func (a *FarmerActor) handleLogin(context actor.Context, msg *LoginMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	farmer, err := a.db.GetFarmerByMobile(ctx, msg.Mobile)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrFarmerNotFound) {
			context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid mobile number or password", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch account", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(farmer.HashedPassword), []byte(msg.Password)); err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid mobile number or password", nil))
		return
	}

	if err := a.db.UpdateFarmerActivity(ctx, farmer.ID); err != nil {
		log.Printf("FarmerActor: failed to update activity for %s: %v", farmer.ID, err)
	}

	a.farmersByID[farmer.ID] = farmer

	a.metrics.AddOperationLatency("login_farmer", time.Since(startTime))
	context.Respond(farmer)
}

func (a *FarmerActor) handleGetProfile(context actor.Context, msg *GetProfileMsg) {
	ctx := stdctx.Background()

	farmer, err := a.db.GetFarmer(ctx, msg.FarmerID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrFarmerNotFound) {
			context.Respond(utils.NewFarmerNotFoundError(msg.FarmerID.String()))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch profile", err))
		return
	}

	a.farmersByID[farmer.ID] = farmer
	context.Respond(farmer)
}

func (a *FarmerActor) handleUpdateProfile(context actor.Context, msg *UpdateProfileMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	err := a.db.UpdateFarmerProfile(ctx, msg.FarmerID, msg.Village, msg.State, msg.PreferredLanguage, msg.Crops)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrFarmerNotFound) {
			context.Respond(utils.NewFarmerNotFoundError(msg.FarmerID.String()))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update profile", err))
		return
	}

	farmer, err := a.db.GetFarmer(ctx, msg.FarmerID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch updated profile", err))
		return
	}

	a.farmersByID[farmer.ID] = farmer

	a.metrics.AddOperationLatency("update_profile", time.Since(startTime))
	context.Respond(farmer)
}
