package dto

type MarkReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,required"`
}

func (r MarkReadRequest) Validate() error {
	return GetValidator().Struct(r)
}
