package salary

type CreateSalaryRequest struct {
	StaffID       string `json:"staffId" binding:"required,uuid"`
	BaseSalary    int    `json:"baseSalary" binding:"required,gte=0"`
	Allowance     int    `json:"allowance" binding:"gte=0"`
	EffectiveDate string `json:"effectiveDate" binding:"required"`
}

type UpdateSalaryRequest struct {
	StaffID       string `json:"staffId" binding:"required,uuid"`
	BaseSalary    int    `json:"baseSalary" binding:"required,gte=0"`
	Allowance     int    `json:"allowance" binding:"gte=0"`
	EffectiveDate string `json:"effectiveDate" binding:"required"`
}

type SalaryResponse struct {
	ID            string `json:"id"`
	StaffID       string `json:"staffId"`
	StaffName     string `json:"staffName,omitempty"`
	BaseSalary    int    `json:"baseSalary"`
	Allowance     int    `json:"allowance"`
	EffectiveDate string `json:"effectiveDate"`
}
