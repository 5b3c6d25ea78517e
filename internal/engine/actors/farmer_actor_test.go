package actors

import (
	"testing"
	"time"

	"kisan-ai/internal/models"
	"kisan-ai/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func spawnFarmerActor(t *testing.T, db *fakeDB) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewFarmerActor(db, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props)
}

func TestFarmerRegistrationAndLogin(t *testing.T) {
	db := newFakeDB()
	system, pid := spawnFarmerActor(t, db)

	regFuture := system.Root.RequestFuture(pid, &RegisterFarmerMsg{
		Name:              "Ramesh Patil",
		Mobile:            "9876543210",
		Password:          "kisan123",
		Village:           "Hingna",
		State:             "Maharashtra",
		Crops:             []string{"wheat", "soybean"},
		PreferredLanguage: "mr",
	}, 5*time.Second)

	regResult, err := regFuture.Result()
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	farmer, ok := regResult.(*models.Farmer)
	if !ok {
		t.Fatalf("Expected farmer, got %T: %v", regResult, regResult)
	}
	assert.Equal(t, "Ramesh Patil", farmer.Name)
	assert.Equal(t, "mr", farmer.PreferredLanguage)
	assert.NotEqual(t, "kisan123", farmer.HashedPassword, "password must not be stored in the clear")

	loginFuture := system.Root.RequestFuture(pid, &LoginMsg{
		Mobile:   "9876543210",
		Password: "kisan123",
	}, 5*time.Second)
	loginResult, err := loginFuture.Result()
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	loggedIn, ok := loginResult.(*models.Farmer)
	if !ok {
		t.Fatalf("Expected farmer, got %T: %v", loginResult, loginResult)
	}
	assert.Equal(t, farmer.ID, loggedIn.ID)

	badLoginFuture := system.Root.RequestFuture(pid, &LoginMsg{
		Mobile:   "9876543210",
		Password: "wrongpassword",
	}, 5*time.Second)
	badLoginResult, err := badLoginFuture.Result()
	if err != nil {
		t.Fatalf("Bad login request failed: %v", err)
	}
	appErr, ok := badLoginResult.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", badLoginResult)
	}
	assert.Equal(t, utils.ErrInvalidCredentials, appErr.Code)
}

func TestRegistrationRejectsBadMobile(t *testing.T) {
	db := newFakeDB()
	system, pid := spawnFarmerActor(t, db)

	badMobiles := []string{"12345", "0876543210", "987654321012", "98765abcde", ""}
	for _, mobile := range badMobiles {
		future := system.Root.RequestFuture(pid, &RegisterFarmerMsg{
			Name:     "Ramesh",
			Mobile:   mobile,
			Password: "kisan123",
		}, 5*time.Second)
		result, err := future.Result()
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		appErr, ok := result.(*utils.AppError)
		if !ok {
			t.Fatalf("Expected AppError for mobile %q, got %T", mobile, result)
		}
		assert.Equal(t, utils.ErrInvalidMobile, appErr.Code, "mobile: %q", mobile)
	}
}

func TestRegistrationRejectsDuplicateMobile(t *testing.T) {
	db := newFakeDB()
	db.seedFarmer("Ramesh", "9876543210")
	system, pid := spawnFarmerActor(t, db)

	future := system.Root.RequestFuture(pid, &RegisterFarmerMsg{
		Name:     "Suresh",
		Mobile:   "9876543210",
		Password: "kisan123",
	}, 5*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", result)
	}
	assert.Equal(t, utils.ErrFarmerExists, appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	db := newFakeDB()
	farmer := db.seedFarmer("Ramesh", "9876543210")
	system, pid := spawnFarmerActor(t, db)

	future := system.Root.RequestFuture(pid, &UpdateProfileMsg{
		FarmerID:          farmer.ID,
		Village:           "Kamptee",
		State:             "Maharashtra",
		PreferredLanguage: "hi",
		Crops:             []string{"cotton"},
	}, 5*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Update profile failed: %v", err)
	}

	updated, ok := result.(*models.Farmer)
	if !ok {
		t.Fatalf("Expected farmer, got %T: %v", result, result)
	}
	assert.Equal(t, "Kamptee", updated.Village)
	assert.Equal(t, "hi", updated.PreferredLanguage)
	assert.Equal(t, []string{"cotton"}, updated.Crops)
}
