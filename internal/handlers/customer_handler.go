package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ErkinN/go-crm/configs"
	"github.com/ErkinN/go-crm/internal/db"
	"github.com/ErkinN/go-crm/internal/models"
	"github.com/ErkinN/go-crm/internal/notifier"
	"github.com/ErkinN/go-crm/internal/store"
	"github.com/ErkinN/go-crm/internal/upload"
	"github.com/ErkinN/go-crm/internal/utils"
)

const perPage = 4

const flashKey = "info"

// GET /
func Homepage(c *gin.Context) {
	sess := sessions.Default(c)
	messages := flashStrings(sess.Flashes(flashKey))
	_ = sess.Save()

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	st := store.New(db.DB)

	customers, err := st.ListPage(perPage*page-perPage, perPage)
	if err != nil {
		internalError(c, err, "failed to list customers")
		return
	}

	count, err := st.Count()
	if err != nil {
		internalError(c, err, "failed to count customers")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":       "Go CRM",
		"description": "Customer Management System",
		"customers":   customers,
		"current":     page,
		"prev":        page - 1,
		"next":        page + 1,
		"pages":       int(math.Ceil(float64(count) / float64(perPage))),
		"messages":    messages,
	})
}

// GET /about
func About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{
		"title":       "About",
		"description": "Customer Management System",
	})
}

// GET /add
func AddCustomerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", gin.H{
		"title":       "Add New Customer - Go CRM",
		"description": "Customer Management System",
	})
}

// POST /add
func CreateCustomer(c *gin.Context) {
	password := c.PostForm("password")
	if password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please provide password"})
		return
	}

	var resume string
	if file, err := c.FormFile("resume"); err == nil {
		resume, err = upload.Save(file, config.LoadUploadConfig().Dir)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidFileType) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Resume must be a PDF file"})
				return
			}
			internalError(c, err, "failed to store resume upload")
			return
		}
	}

	customer := models.Customer{
		Author:    c.PostForm("author"),
		Password:  password,
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Details:   c.PostForm("details"),
		Tel:       c.PostForm("tel"),
		Email:     c.PostForm("email"),
		Resume:    resume,
	}

	if err := store.New(db.DB).Create(&customer); err != nil {
		if errors.Is(err, store.ErrDuplicatePassword) {
			c.JSON(http.StatusConflict, gin.H{"message": "Duplicate password"})
			return
		}
		internalError(c, err, "failed to create customer")
		return
	}

	sess := sessions.Default(c)
	sess.AddFlash("New customer has been added.", flashKey)
	_ = sess.Save()

	go func(cust models.Customer) {
		if cust.Email == "" {
			return
		}
		if err := notifier.SendWelcomeEmail(cust.Email, cust.FirstName); err != nil && !errors.Is(err, notifier.ErrNotConfigured) {
			log.Err(err).Uint("customer_id", cust.ID).Msg("Failed to send welcome email")
		}
	}(customer)

	go func(cust models.Customer) {
		if cust.Tel == "" {
			return
		}
		if err := notifier.SendWelcomeSMS(cust.Tel, cust.FirstName); err != nil && !errors.Is(err, notifier.ErrNotConfigured) {
			log.Err(err).Uint("customer_id", cust.ID).Msg("Failed to send welcome SMS")
		}
	}(customer)

	c.Redirect(http.StatusFound, "/")
}

// GET /view/:id
func ViewCustomer(c *gin.Context) {
	customer, err := lookupCustomer(c)
	if err != nil {
		internalError(c, err, "failed to load customer")
		return
	}

	c.HTML(http.StatusOK, "view.html", gin.H{
		"title":       "View Customer Data",
		"description": "Customer Management System",
		"customer":    customer,
	})
}

// GET /edit/:id
func EditCustomerForm(c *gin.Context) {
	customer, err := lookupCustomer(c)
	if err != nil {
		internalError(c, err, "failed to load customer")
		return
	}

	c.HTML(http.StatusOK, "edit.html", gin.H{
		"title":       "Edit Customer Data",
		"description": "Customer Management System",
		"customer":    customer,
	})
}

type editCustomerRequest struct {
	Password  string `form:"password" json:"password"`
	FirstName string `form:"firstName" json:"firstName"`
	LastName  string `form:"lastName" json:"lastName"`
	Tel       string `form:"tel" json:"tel"`
	Email     string `form:"email" json:"email"`
	Details   string `form:"details" json:"details"`
}

// PUT /edit/:id
func UpdateCustomer(c *gin.Context) {
	var req editCustomerRequest
	_ = c.ShouldBind(&req)

	if !authorizeBySecret(c, req.Password) {
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.Redirect(http.StatusFound, "/edit/"+c.Param("id"))
		return
	}

	err := store.New(db.DB).UpdateByID(id, map[string]interface{}{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"tel":        req.Tel,
		"email":      req.Email,
		"details":    req.Details,
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err, "failed to update customer")
		return
	}

	c.Redirect(http.StatusFound, "/edit/"+c.Param("id"))
}

type deleteCustomerRequest struct {
	Password string `form:"password" json:"password"`
}

// DELETE /edit/:id
func DeleteCustomer(c *gin.Context) {
	var req deleteCustomerRequest
	_ = c.ShouldBind(&req)

	if !authorizeBySecret(c, req.Password) {
		return
	}

	if id, ok := parseID(c.Param("id")); ok {
		if err := store.New(db.DB).DeleteByID(id); err != nil {
			internalError(c, err, "failed to delete customer")
			return
		}
	}

	c.Redirect(http.StatusFound, "/")
}

// POST /search
func SearchCustomers(c *gin.Context) {
	searchTerm := utils.SanitizeSearchTerm(c.PostForm("searchTerm"))

	customers, err := store.New(db.DB).SearchByName(searchTerm)
	if err != nil {
		internalError(c, err, "failed to search customers")
		return
	}

	c.HTML(http.StatusOK, "search.html", gin.H{
		"title":       "Search Customer Data",
		"description": "Customer Management System",
		"customers":   customers,
		"searchTerm":  searchTerm,
	})
}

// authorizeBySecret checks the supplied password against any record's
// secret, matching the reference behavior: the secret is a shared token,
// not tied to the record being edited.
func authorizeBySecret(c *gin.Context, password string) bool {
	_, err := store.New(db.DB).FindByPassword(password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return false
		}
		internalError(c, err, "failed to check customer secret")
		return false
	}
	return true
}

// lookupCustomer resolves the :id path parameter. A missing or malformed id
// yields a nil customer and the page renders empty, as the original does.
func lookupCustomer(c *gin.Context) (*models.Customer, error) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return nil, nil
	}

	customer, err := store.New(db.DB).FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func flashStrings(flashes []interface{}) []string {
	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

func internalError(c *gin.Context, err error, msg string) {
	log.Err(err).Str("path", c.FullPath()).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
